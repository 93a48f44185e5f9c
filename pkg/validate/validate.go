// Package validate holds the per-endpoint input checks. Every failure is an
// errno.ErrNo with BadRequestCode, raised before any query touches the store.
package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/pipeline"
)

// ObjectID 校验ID格式，ID为UUID字符串
func ObjectID(name, v string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(v))
	if err != nil {
		return "", errno.BadRequest("Invalid " + name).WithErrors(name + " must be a valid id")
	}
	return id.String(), nil
}

// Required 校验必填字段，返回去除首尾空白后的值
func Required(name, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", errno.BadRequest(name + " is required")
	}
	return v, nil
}

// Content trims v and checks it is non-empty. max <= 0 disables the length cap,
// which is counted in characters rather than bytes.
func Content(name, v string, max int) (string, error) {
	v, err := Required(name, v)
	if err != nil {
		return "", err
	}
	if max > 0 && utf8.RuneCountInString(v) > max {
		return "", errno.BadRequest(name + " must be at most " + strconv.Itoa(max) + " characters")
	}
	return v, nil
}

// Pagination 解析page与limit，空值使用默认值
func Pagination(pageStr, limitStr string) (pipeline.Page, error) {
	page, err := positiveInt("page", pageStr, constants.DefaultPage)
	if err != nil {
		return pipeline.Page{}, err
	}
	limit, err := positiveInt("limit", limitStr, constants.DefaultLimit)
	if err != nil {
		return pipeline.Page{}, err
	}
	if limit > constants.MaxLimit {
		return pipeline.Page{}, errno.BadRequest("limit must be between 1 and " + strconv.Itoa(constants.MaxLimit))
	}
	return pipeline.Page{Number: page, Limit: limit}, nil
}

func positiveInt(name, v string, def int) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, errno.BadRequest(name + " must be a positive integer")
	}
	return n, nil
}

// Sort resolves sortBy through the allow-list and parses sortType.
// It returns the column expression and whether the order is descending.
func Sort(fields pipeline.SortFields, sortBy, sortType string) (string, bool, error) {
	sortBy = strings.TrimSpace(sortBy)
	if sortBy == "" {
		sortBy = constants.DefaultSortBy
	}
	column, err := fields.Lookup(sortBy)
	if err != nil {
		return "", false, errno.BadRequest("Invalid sortBy").WithErrors(err.Error())
	}

	switch strings.ToLower(strings.TrimSpace(sortType)) {
	case "":
		return column, constants.DefaultSortType == "desc", nil
	case "asc":
		return column, false, nil
	case "desc":
		return column, true, nil
	default:
		return "", false, errno.BadRequest("sortType must be asc or desc")
	}
}

// LikeEscape is the escape character used with EscapeLike.
const LikeEscape = "!"

// EscapeLike escapes the LIKE wildcards in s so it matches literally, and
// wraps it for a substring match. Case is left alone: fold both sides in
// SQL, as in `LOWER(col) LIKE LOWER(?) ESCAPE '!'`, so the store's own
// folding rules apply to column and pattern alike.
func EscapeLike(s string) string {
	r := strings.NewReplacer(LikeEscape, LikeEscape+LikeEscape, "%", LikeEscape+"%", "_", LikeEscape+"_")
	return "%" + r.Replace(s) + "%"
}
