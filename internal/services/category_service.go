package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "contas/internal/errors"
	"contas/internal/events"
	"contas/internal/logger"
	"contas/internal/metrics"
	"contas/internal/models"
	"contas/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, publisher events.Publisher) CategoryServicer {
	return &categoryService{db: db, publisher: publisher}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(name string, categoryType models.CategoryType, icon, color string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if categoryType != models.CategoryTypeIncome && categoryType != models.CategoryTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category type")
	}

	// Category names are unique per type.
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("name = ? AND type = ?", name, categoryType).
		Count(&count).Error; err != nil {
		return nil, wrapStoreError(err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category with this name already exists")
	}

	category := &models.Category{
		Name:  name,
		Type:  categoryType,
		Icon:  icon,
		Color: color,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	return category, nil
}

// GetCategories retrieves a paginated list of categories, optionally
// filtered by type.
func (s *categoryService) GetCategories(categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{})
	if categoryType != nil {
		base = base.Where("type = ?", *categoryType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).Order("name").Find(&categories).Error; err != nil {
		return nil, wrapStoreError(err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, wrapStoreError(err)
	}
	return &category, nil
}

// UpdateCategory updates a category's name, icon, and color. The type is
// immutable: flipping income/expense under existing records would break the
// category-type invariant on every one of them.
func (s *categoryService) UpdateCategory(categoryID string, name, icon, color string) (*models.Category, error) {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if icon != "" {
		updates["icon"] = icon
	}
	if color != "" {
		updates["color"] = color
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, wrapStoreError(err)
		}
	}

	return category, nil
}

// CanDeleteCategory reports whether the category is unreferenced by any
// transaction or bill.
func (s *categoryService) CanDeleteCategory(categoryID string) (bool, error) {
	if _, err := s.GetCategoryByID(categoryID); err != nil {
		return false, err
	}
	kind, err := findCategoryReference(s.db, categoryID)
	if err != nil {
		return false, err
	}
	return kind == "", nil
}

// DeleteCategory removes a category if no transaction or bill references
// it. Check and delete share one transaction to close the check/act race.
func (s *categoryService) DeleteCategory(categoryID string) error {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		kind, err := findCategoryReference(tx, categoryID)
		if err != nil {
			return err
		}
		if kind != "" {
			return apperrors.WithMessage(apperrors.ErrCategoryInUse,
				"Category is referenced by existing "+kind)
		}

		if err := tx.Delete(category).Error; err != nil {
			return wrapStoreError(err)
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCategoryInUse.Code {
			metrics.IntegrityRejections.WithLabelValues("category").Inc()
		}
		return err
	}

	s.publish(events.TypeCategoryDeleted, categoryID)
	return nil
}

// findCategoryReference returns the kind of the first ledger record found
// referencing the category ("transactions" or "bills"), or "" when the
// category is unreferenced.
func findCategoryReference(db *gorm.DB, categoryID string) (string, error) {
	var count int64
	if err := db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return "", wrapStoreError(err)
	}
	if count > 0 {
		return "transactions", nil
	}

	if err := db.Model(&models.Bill{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return "", wrapStoreError(err)
	}
	if count > 0 {
		return "bills", nil
	}
	return "", nil
}

func (s *categoryService) publish(eventType, entityID string) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.Publish(ctx, events.New(eventType, entityID)); err != nil {
		logger.Get().Warnw("failed to publish event",
			"type", eventType,
			"entity_id", entityID,
			"error", err,
		)
	}
}
