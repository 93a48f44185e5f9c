package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"videotube.com/cmd/dal/db"
	"videotube.com/cmd/model"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/validate"
)

var errTweetNotFound = errno.NotFound("Tweet not found")

type TweetService struct {
	ctx context.Context
}

func NewTweetService(ctx context.Context) *TweetService {
	return &TweetService{ctx: ctx}
}

func (s *TweetService) CreateTweet(actorID, content string) (*model.Tweet, error) {
	content, err := validate.Content("content", content, constants.TweetMaxLength)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tweet := &model.Tweet{ID: uuid.NewString(), OwnerID: actorID, Content: content, CreatedAt: now, UpdatedAt: now}
	if err = db.CreateTweet(s.ctx, tweet); err != nil {
		return nil, errors.WithMessage(err, "create tweet failed")
	}
	return tweet, nil
}

func (s *TweetService) ListUserTweets(actorID, userID, page, limit string) (*model.TweetPage, error) {
	p, err := validate.Pagination(page, limit)
	if err != nil {
		return nil, err
	}
	ownerID, err := validate.ObjectID("userId", userID)
	if err != nil {
		return nil, err
	}
	owner, err := db.GetUserByID(s.ctx, ownerID)
	if err != nil {
		return nil, errors.WithMessage(err, "load user failed")
	}
	if owner == nil {
		return nil, errno.NotFound("User not found")
	}
	tweets, total, err := db.ListUserTweets(s.ctx, owner.ID, actorID, p)
	if err != nil {
		return nil, errors.WithMessage(err, "list tweets failed")
	}
	return &model.TweetPage{Tweets: tweets, PageInfo: model.NewPageInfo(p, total)}, nil
}

func (s *TweetService) UpdateTweet(actorID, tweetID, content string) (*model.Tweet, error) {
	content, err := validate.Content("content", content, constants.TweetMaxLength)
	if err != nil {
		return nil, err
	}
	tweet, err := s.loadOwned(actorID, tweetID)
	if err != nil {
		return nil, err
	}
	if err = db.UpdateTweetContent(s.ctx, tweet.ID, content); err != nil {
		return nil, errors.WithMessage(err, "update tweet failed")
	}
	return db.GetTweet(s.ctx, tweet.ID)
}

func (s *TweetService) DeleteTweet(actorID, tweetID string) error {
	tweet, err := s.loadOwned(actorID, tweetID)
	if err != nil {
		return err
	}
	return errors.WithMessage(db.DeleteTweet(s.ctx, tweet.ID), "delete tweet failed")
}

func (s *TweetService) loadOwned(actorID, tweetID string) (*model.Tweet, error) {
	id, err := validate.ObjectID("tweetId", tweetID)
	if err != nil {
		return nil, err
	}
	tweet, err := db.GetTweet(s.ctx, id)
	if err != nil {
		return nil, errors.WithMessage(err, "load tweet failed")
	}
	if tweet == nil {
		return nil, errTweetNotFound
	}
	if tweet.OwnerID != actorID {
		return nil, errno.Forbidden("You are not the owner of this tweet")
	}
	return tweet, nil
}
