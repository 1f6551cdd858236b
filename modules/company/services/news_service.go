package services

import (
	"context"

	"github.com/iota-uz/officelife/modules/company/domain/entities/news"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/execution"
)

type CreateNewsRequest struct {
	execution.Base
	Title   string `form:"title" validate:"required,max=255"`
	Content string `form:"content" validate:"required,max=65535"`
}

type NewsService struct {
	exec *execution.Executor
	repo news.Repository
}

func NewNewsService(exec *execution.Executor, repo news.Repository) *NewsService {
	return &NewsService{exec: exec, repo: repo}
}

func (s *NewsService) List(ctx context.Context, limit, offset int) ([]news.News, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *NewsService) CreateCompanyNews(ctx context.Context, req *CreateNewsRequest) (news.News, error) {
	return execution.Run(ctx, s.exec, execution.Operation[struct{}, news.News]{
		Name:        "create_company_news",
		Request:     req,
		Requirement: authz.AtLeast(authz.RoleHR),
		Mutate: func(ctx context.Context, call execution.Call, _ struct{}) (news.News, error) {
			return s.repo.Create(ctx, news.News{
				CompanyID:  call.Scope.CompanyID,
				AuthorID:   call.Actor.ID,
				AuthorName: call.Actor.Name,
				Title:      req.Title,
				Content:    req.Content,
				CreatedAt:  call.Now,
			})
		},
		Audit: func(call execution.Call, _ struct{}, n news.News) []audit.Entry {
			return []audit.Entry{
				audit.ForCompany(call.Scope.CompanyID, call.Author(), call.Now, audit.CompanyNewsCreated{
					NewsID: n.ID,
					Title:  n.Title,
				}),
			}
		},
	})
}
