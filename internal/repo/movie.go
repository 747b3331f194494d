package repo

import (
	"context"

	"github.com/crucial707/watchlist/internal/models"
	"gorm.io/gorm"
)

// ========================
// REPOSITORY STRUCT
// ========================

type MovieRepo struct {
	DB *gorm.DB
}

func NewMovieRepo(db *gorm.DB) *MovieRepo {
	return &MovieRepo{DB: db}
}

// ========================
// CREATE MOVIE
// ========================

func (r *MovieRepo) Create(ctx context.Context, title, year string) (*models.Movie, error) {
	movie := &models.Movie{Title: title, Year: year}
	if err := r.DB.WithContext(ctx).Create(movie).Error; err != nil {
		return nil, err
	}
	return movie, nil
}

// ========================
// GET MOVIE BY ID
// ========================

func (r *MovieRepo) GetByID(ctx context.Context, id int) (*models.Movie, error) {
	var movie models.Movie
	if err := r.DB.WithContext(ctx).First(&movie, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &movie, nil
}

// ========================
// UPDATE MOVIE
// ========================

// Update writes title and year of an existing movie in place.
func (r *MovieRepo) Update(ctx context.Context, movie *models.Movie) error {
	return r.DB.WithContext(ctx).
		Model(movie).
		Updates(map[string]interface{}{"title": movie.Title, "year": movie.Year}).
		Error
}

// ========================
// DELETE MOVIE BY ID
// ========================

func (r *MovieRepo) DeleteByID(ctx context.Context, id int) error {
	result := r.DB.WithContext(ctx).Delete(&models.Movie{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ========================
// LIST ALL MOVIES
// ========================

// List returns every movie in insertion order.
func (r *MovieRepo) List(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := r.DB.WithContext(ctx).Order("id").Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}
