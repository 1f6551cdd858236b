package persistence

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iota-uz/officelife/modules/company/domain/entities/news"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/repo"
)

type pgNewsRepository struct{}

func NewNewsRepository() news.Repository {
	return &pgNewsRepository{}
}

func (r *pgNewsRepository) Create(ctx context.Context, n news.News) (news.News, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return news.News{}, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return news.News{}, err
	}
	n.CompanyID = companyID
	if err := tx.QueryRow(ctx, `
		INSERT INTO company_news (company_id, author_id, author_name, title, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		n.CompanyID, n.AuthorID, n.AuthorName, n.Title, n.Content, n.CreatedAt,
	).Scan(&n.ID); err != nil {
		return news.News{}, errors.Wrap(err, "failed to create company news")
	}
	return n, nil
}

func (r *pgNewsRepository) List(ctx context.Context, limit, offset int) ([]news.News, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
		SELECT id, company_id, author_id, author_name, title, content, created_at
		FROM company_news WHERE company_id = $1
		ORDER BY created_at DESC, id DESC `+repo.FormatLimitOffset(limit, offset),
		companyID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query company news")
	}
	defer rows.Close()

	var out []news.News
	for rows.Next() {
		var n news.News
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.AuthorID, &n.AuthorName, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan company news")
		}
		out = append(out, n)
	}
	return out, errors.Wrap(rows.Err(), "error iterating company news")
}
