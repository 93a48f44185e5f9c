package db

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"videotube.com/cmd/model"
	"videotube.com/pkg/pipeline"
)

// ErrUserExists 用户名或邮箱已被占用
var ErrUserExists = errors.New("user with email or username already exists")

func CreateUser(ctx context.Context, user *model.User) error {
	if err := DB.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return ErrUserExists
		}
		return errors.WithMessage(err, "dao.CreateUser failed")
	}
	return nil
}

// GetUserByID 用户不存在时返回 nil, nil
func GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return findUser(ctx, "id = ?", id)
}

func GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return findUser(ctx, "username = ?", strings.ToLower(username))
}

// GetUserByLogin 按用户名或邮箱查找
func GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	login = strings.ToLower(login)
	return findUser(ctx, "username = ? OR email = ?", login, login)
}

func UserExists(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := DB.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", strings.ToLower(username), strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, errors.WithMessage(err, "dao.UserExists failed")
	}
	return count > 0, nil
}

func findUser(ctx context.Context, cond string, args ...interface{}) (*model.User, error) {
	var user model.User
	err := DB.WithContext(ctx).Where(cond, args...).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithMessage(err, "dao.findUser failed")
	}
	return &user, nil
}

// GetChannelProfile 频道主页：订阅者数、已订阅频道数以及viewer是否已订阅
func GetChannelProfile(ctx context.Context, username, viewerID string) (*model.ChannelProfile, error) {
	p := pipeline.New("users AS u",
		pipeline.Match("u.username = ?", strings.ToLower(username)),
		pipeline.Project(
			pipeline.Col("u.id", "id"),
			pipeline.Col("u.username", "username"),
			pipeline.Col("u.full_name", "full_name"),
			pipeline.Col("u.avatar", "avatar"),
			pipeline.Col("u.cover_image", "cover_image"),
		),
		pipeline.CountOf("subscribers_count", "subscriptions AS s", "s.channel_id = u.id"),
		pipeline.CountOf("channels_subscribed_to_count", "subscriptions AS s", "s.subscriber_id = u.id"),
		pipeline.ExistsIn("is_subscribed", "subscriptions AS s", "s.channel_id = u.id AND s.subscriber_id = ?", viewerID),
	)
	var profile model.ChannelProfile
	found, err := p.RunOne(ctx, DB, &profile)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetChannelProfile failed")
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}
