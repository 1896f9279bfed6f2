package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/ArnW0lf/ParaJose/domain/model"
)

// PostRepository persists seed posts using PostgreSQL.
type PostRepository struct{ db *sql.DB }

func NewPostRepository(db *sql.DB) *PostRepository { return &PostRepository{db: db} }

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	q := `INSERT INTO posts (title, body, created_at) VALUES ($1,$2,$3) RETURNING id`
	return r.db.QueryRowContext(ctx, q, post.Title, post.Body, post.CreatedAt).Scan(&post.ID)
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, body, created_at FROM posts WHERE id=$1`, id)
	post := &model.Post{}
	if err := row.Scan(&post.ID, &post.Title, &post.Body, &post.CreatedAt); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostRepository) List(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, body, created_at FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.Post
	for rows.Next() {
		post := &model.Post{}
		if err := rows.Scan(&post.ID, &post.Title, &post.Body, &post.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, post)
	}
	return list, rows.Err()
}

// Delete removes a post; publications cascade via the FK constraint.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
