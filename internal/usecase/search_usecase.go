package usecase

import (
	"context"
	"strings"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/repository"
	"entreprenapp/pkg/apperror"
)

type SearchResult struct {
	Users []entity.User `json:"users"`
	Posts []entity.Post `json:"posts"`
}

type SearchUsecase interface {
	Search(ctx context.Context, query string, limit, offset int64) (SearchResult, error)
}

type searchUsecase struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

func NewSearchUsecase(userRepo repository.UserRepository, postRepo repository.PostRepository) SearchUsecase {
	return &searchUsecase{
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

func (u *searchUsecase) Search(ctx context.Context, query string, limit, offset int64) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, apperror.BadRequest("query is required")
	}

	users, err := u.userRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return SearchResult{}, apperror.Internal(err)
	}
	for i := range users {
		users[i].Password = ""
	}

	posts, err := u.postRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return SearchResult{}, apperror.Internal(err)
	}

	return SearchResult{Users: users, Posts: posts}, nil
}
