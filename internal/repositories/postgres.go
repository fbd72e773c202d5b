package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vidshelf/backend/internal/db"
	"github.com/vidshelf/backend/internal/models"
)

// PostgresCategoryRepository provides PostgreSQL-backed persistence for categories.
type PostgresCategoryRepository struct {
	pool db.Pool
}

// NewPostgresCategoryRepository constructs a category repository backed by PostgreSQL.
func NewPostgresCategoryRepository(pool db.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

// Create persists a new category. The unique index on lower(name) makes the
// name check and the insert a single atomic statement; a violation surfaces
// as ErrConflict.
func (r *PostgresCategoryRepository) Create(ctx context.Context, category models.Category) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO categories (id, name, description)
        VALUES ($1, $2, $3)
    `, category.ID, category.Name, category.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("insert category: %w", err)
	}

	return nil
}

// Update modifies an existing category record.
func (r *PostgresCategoryRepository) Update(ctx context.Context, category models.Category) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE categories
        SET name = $2, description = $3
        WHERE id = $1
    `, category.ID, category.Name, category.Description)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("update category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a category. Videos owned by the category are removed with it
// through the ON DELETE CASCADE constraint on videos.category_id.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// FindByID fetches a category by its identifier.
func (r *PostgresCategoryRepository) FindByID(ctx context.Context, id string) (models.Category, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Category{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, name, COALESCE(description, '')
        FROM categories
        WHERE id = $1
    `, id)

	var category models.Category
	if err := row.Scan(&category.ID, &category.Name, &category.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Category{}, ErrNotFound
		}
		return models.Category{}, fmt.Errorf("select category by id: %w", err)
	}

	return category, nil
}

// FindAll returns every category ordered by name.
func (r *PostgresCategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, name, COALESCE(description, '')
        FROM categories
        ORDER BY lower(name)
    `)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// ExistsByID reports whether a category with the given identifier exists.
func (r *PostgresCategoryRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var exists bool
	row := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check category existence: %w", err)
	}

	return exists, nil
}

// PostgresVideoRepository provides PostgreSQL-backed persistence for videos.
type PostgresVideoRepository struct {
	pool db.Pool
}

// NewPostgresVideoRepository constructs a video repository backed by PostgreSQL.
func NewPostgresVideoRepository(pool db.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{pool: pool}
}

const videoColumns = `
        v.id, v.title, v.description, v.url, v.duration_seconds,
        v.video_type, v.video_id, v.category_id, c.name, v.created_at, v.updated_at`

// Create stores a new video record. A missing category surfaces as
// ErrNotFound via the foreign key constraint, which also closes the race
// between the caller's existence check and the insert.
func (r *PostgresVideoRepository) Create(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO videos (id, title, description, url, duration_seconds, video_type, video_id, category_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, video.ID, video.Title, video.Description, video.URL, video.DurationSeconds,
		string(video.VideoType), video.VideoID, video.CategoryID, video.CreatedAt, video.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrConflict
			case "23503":
				return ErrNotFound
			}
		}
		return fmt.Errorf("insert video: %w", err)
	}

	return nil
}

// Update rewrites an existing video record, derived columns included.
func (r *PostgresVideoRepository) Update(ctx context.Context, video models.Video) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE videos
        SET title = $2, description = $3, url = $4, duration_seconds = $5,
            video_type = $6, video_id = $7, category_id = $8, updated_at = $9
        WHERE id = $1
    `, video.ID, video.Title, video.Description, video.URL, video.DurationSeconds,
		string(video.VideoType), video.VideoID, video.CategoryID, video.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return fmt.Errorf("update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a video record.
func (r *PostgresVideoRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// FindByID fetches a video by its identifier.
func (r *PostgresVideoRepository) FindByID(ctx context.Context, id string) (models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT `+videoColumns+`
        FROM videos v
        LEFT JOIN categories c ON c.id = v.category_id
        WHERE v.id = $1
    `, id)

	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Video{}, ErrNotFound
		}
		return models.Video{}, fmt.Errorf("select video by id: %w", err)
	}

	return video, nil
}

// FindAll returns every video, newest first.
func (r *PostgresVideoRepository) FindAll(ctx context.Context) ([]models.Video, error) {
	return r.queryVideos(ctx, `
        SELECT `+videoColumns+`
        FROM videos v
        LEFT JOIN categories c ON c.id = v.category_id
        ORDER BY v.created_at DESC
    `)
}

// FindByCategory returns the videos attached to a category, newest first.
func (r *PostgresVideoRepository) FindByCategory(ctx context.Context, categoryID string) ([]models.Video, error) {
	return r.queryVideos(ctx, `
        SELECT `+videoColumns+`
        FROM videos v
        LEFT JOIN categories c ON c.id = v.category_id
        WHERE v.category_id = $1
        ORDER BY v.created_at DESC
    `, categoryID)
}

// SearchByTitle returns videos whose title contains the term, case-insensitively.
func (r *PostgresVideoRepository) SearchByTitle(ctx context.Context, title string) ([]models.Video, error) {
	return r.queryVideos(ctx, `
        SELECT `+videoColumns+`
        FROM videos v
        LEFT JOIN categories c ON c.id = v.category_id
        WHERE v.title ILIKE '%' || $1 || '%'
        ORDER BY v.created_at DESC
    `, title)
}

func (r *PostgresVideoRepository) queryVideos(ctx context.Context, query string, args ...any) ([]models.Video, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}

func scanVideo(row pgx.Row) (models.Video, error) {
	var (
		video        models.Video
		description  sql.NullString
		duration     sql.NullInt32
		videoType    string
		videoID      sql.NullString
		categoryID   sql.NullString
		categoryName sql.NullString
	)

	if err := row.Scan(&video.ID, &video.Title, &description, &video.URL, &duration,
		&videoType, &videoID, &categoryID, &categoryName, &video.CreatedAt, &video.UpdatedAt); err != nil {
		return models.Video{}, err
	}

	video.VideoType = models.VideoType(videoType)
	if description.Valid {
		video.Description = &description.String
	}
	if duration.Valid {
		seconds := int(duration.Int32)
		video.DurationSeconds = &seconds
	}
	if videoID.Valid {
		video.VideoID = &videoID.String
	}
	if categoryID.Valid {
		video.CategoryID = &categoryID.String
	}
	if categoryName.Valid {
		video.CategoryName = &categoryName.String
	}

	return video, nil
}

var _ CategoryRepository = (*PostgresCategoryRepository)(nil)
var _ VideoRepository = (*PostgresVideoRepository)(nil)
