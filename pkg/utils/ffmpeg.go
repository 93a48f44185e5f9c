package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration 使用ffprobe读取媒体时长(秒)
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "ffprobe failed")
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(probe string) (float64, error) {
	raw := gjson.Get(probe, "format.duration")
	if !raw.Exists() {
		return 0, errors.New("probe output has no format.duration")
	}
	d, err := strconv.ParseFloat(raw.String(), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration %q", raw.String())
	}
	return d, nil
}

// ProbeUploadDuration 上传内容可能只在内存中，先落到临时文件再探测
func ProbeUploadDuration(file *multipart.FileHeader) (float64, error) {
	src, err := file.Open()
	if err != nil {
		return 0, errors.WithMessage(err, "open upload failed")
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "videotube-*"+filepath.Ext(file.Filename))
	if err != nil {
		return 0, errors.WithMessage(err, "create temp file failed")
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, src); err != nil {
		tmp.Close()
		return 0, errors.WithMessage(err, "write temp file failed")
	}
	if err = tmp.Close(); err != nil {
		return 0, err
	}
	return ProbeDuration(tmp.Name())
}
