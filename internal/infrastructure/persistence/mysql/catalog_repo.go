package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookworm/internal/domain/book"
	apperrors "github.com/xiebiao/bookworm/pkg/errors"
)

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) book.AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *book.Author) error {
	model := &AuthorModel{Name: a.Name, Bio: a.Bio}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}
	a.ID = model.ID
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*book.Author, error) {
	var model AuthorModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrAuthorNotFound.WithMessage("Author not found with id %d", id)
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

func (r *authorRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Author, error) {
	result := make(map[uint]*book.Author, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var models []AuthorModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询作者失败")
	}
	for i := range models {
		result[models[i].ID] = toAuthorEntity(&models[i])
	}
	return result, nil
}

func (r *authorRepository) List(ctx context.Context) ([]*book.Author, error) {
	var models []AuthorModel
	if err := dbFrom(ctx, r.db).Order("author_name ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}
	authors := make([]*book.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, nil
}

func toAuthorEntity(m *AuthorModel) *book.Author {
	return &book.Author{ID: m.ID, Name: m.Name, Bio: m.Bio}
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) book.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *book.Category) error {
	model := &CategoryModel{Name: c.Name, Description: c.Description}
	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建分类失败")
	}
	c.ID = model.ID
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*book.Category, error) {
	var model CategoryModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrCategoryNotFound.WithMessage("Category not found with id %d", id)
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Category, error) {
	result := make(map[uint]*book.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var models []CategoryModel
	if err := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询分类失败")
	}
	for i := range models {
		result[models[i].ID] = toCategoryEntity(&models[i])
	}
	return result, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*book.Category, error) {
	var models []CategoryModel
	if err := dbFrom(ctx, r.db).Order("category_name ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}
	categories := make([]*book.Category, len(models))
	for i := range models {
		categories[i] = toCategoryEntity(&models[i])
	}
	return categories, nil
}

func toCategoryEntity(m *CategoryModel) *book.Category {
	return &book.Category{ID: m.ID, Name: m.Name, Description: m.Description}
}
