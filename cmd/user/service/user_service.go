package service

import (
	"context"
	"mime/multipart"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"videotube.com/cmd/dal/db"
	"videotube.com/cmd/infras"
	"videotube.com/cmd/model"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/mq"
	"videotube.com/pkg/utils"
	"videotube.com/pkg/validate"
)

const minPasswordLength = 6

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9_.]{3,30}$`)

	errUserExists     = errno.BadRequest("User with email or username already exists")
	errBadCredentials = errno.AuthorizationFailedErr.WithMessage("Invalid user credentials")
	errUserNotFound   = errno.NotFound("User does not exist")
)

type UserService struct {
	ctx context.Context
}

func NewUserService(ctx context.Context) *UserService {
	return &UserService{ctx: ctx}
}

type RegisterRequest struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *multipart.FileHeader
	CoverImage *multipart.FileHeader
}

func (s *UserService) Register(req *RegisterRequest) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if !usernamePattern.MatchString(username) {
		return nil, errno.BadRequest("username must be 3-30 characters of a-z, 0-9, _ or .")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(email, "@") {
		return nil, errno.BadRequest("email is invalid")
	}
	fullName, err := validate.Required("fullName", req.FullName)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, errno.BadRequest("password must be at least 6 characters")
	}
	if req.Avatar == nil {
		return nil, errno.BadRequest("avatar is required")
	}

	exists, err := db.UserExists(s.ctx, username, email)
	if err != nil {
		return nil, errors.WithMessage(err, "check user failed")
	}
	if exists {
		return nil, errUserExists
	}
	if infras.Storage == nil {
		return nil, errno.OssErr
	}

	avatarURL, err := infras.Storage.Upload(s.ctx, constants.FolderAvatars, req.Avatar)
	if err != nil {
		return nil, errno.OssErr.WithMessage("Failed to upload avatar")
	}
	var coverURL string
	if req.CoverImage != nil {
		if coverURL, err = infras.Storage.Upload(s.ctx, constants.FolderCovers, req.CoverImage); err != nil {
			infras.CleanupMedia(s.ctx, "", mq.ReasonUploadAborted, avatarURL)
			return nil, errno.OssErr.WithMessage("Failed to upload cover image")
		}
	}

	hashed, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password failed")
	}
	now := time.Now()
	user := &model.User{
		ID:         uuid.NewString(),
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Avatar:     avatarURL,
		CoverImage: coverURL,
		Password:   hashed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err = db.CreateUser(s.ctx, user); err != nil {
		infras.CleanupMedia(s.ctx, "", mq.ReasonUploadAborted, avatarURL, coverURL)
		if errors.Is(err, db.ErrUserExists) {
			return nil, errUserExists
		}
		return nil, errors.WithMessage(err, "create user failed")
	}
	return user, nil
}

// Login 按用户名或邮箱登录
func (s *UserService) Login(login, password string) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, errno.BadRequest("username or email is required")
	}
	if password == "" {
		return nil, errno.BadRequest("password is required")
	}
	user, err := db.GetUserByLogin(s.ctx, login)
	if err != nil {
		return nil, errors.WithMessage(err, "load user failed")
	}
	// 用户不存在与密码错误返回同样的提示
	if user == nil || !utils.VerifyPassword(password, user.Password) {
		return nil, errBadCredentials
	}
	return user, nil
}

func (s *UserService) CurrentUser(actorID string) (*model.User, error) {
	user, err := db.GetUserByID(s.ctx, actorID)
	if err != nil {
		return nil, errors.WithMessage(err, "load user failed")
	}
	if user == nil {
		return nil, errUserNotFound
	}
	return user, nil
}

func (s *UserService) ChannelProfile(actorID, username string) (*model.ChannelProfile, error) {
	username, err := validate.Required("username", username)
	if err != nil {
		return nil, err
	}
	profile, err := db.GetChannelProfile(s.ctx, username, actorID)
	if err != nil {
		return nil, errors.WithMessage(err, "load channel failed")
	}
	if profile == nil {
		return nil, errno.NotFound("Channel does not exist")
	}
	return profile, nil
}

func (s *UserService) WatchHistory(actorID, page, limit string) (*model.WatchHistoryPage, error) {
	p, err := validate.Pagination(page, limit)
	if err != nil {
		return nil, err
	}
	history, total, err := db.ListWatchHistory(s.ctx, actorID, p)
	if err != nil {
		return nil, errors.WithMessage(err, "list watch history failed")
	}
	return &model.WatchHistoryPage{History: history, PageInfo: model.NewPageInfo(p, total)}, nil
}
