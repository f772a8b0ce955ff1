package corpus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"nutrigo/internal/nutrition"
	"nutrigo/models"
)

// Repo is the persisted-corpus collaborator behind the resolver's second
// tier. It satisfies nutrition.CorpusSearcher.
type Repo struct {
	db *gorm.DB
}

// New wraps a gorm handle in a corpus repository.
func New(db *gorm.DB) (*Repo, error) {
	if db == nil {
		return nil, errors.New("corpus: database handle must not be nil")
	}
	return &Repo{db: db}, nil
}

const searchLimit = 10

// Search returns corpus records whose name matches the query or one of its
// significant tokens, best matches first.
func (r *Repo) Search(ctx context.Context, query string) ([]nutrition.Food, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	conditions := r.db.Where("LOWER(name) LIKE ?", "%"+query+"%")
	for _, token := range strings.Fields(query) {
		if len(token) < 3 {
			continue
		}
		conditions = conditions.Or("LOWER(name) LIKE ?", "%"+token+"%")
	}

	var records []models.Food
	if err := r.db.WithContext(ctx).Model(&models.Food{}).
		Where(conditions).Limit(searchLimit).Order("name").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("corpus: search %q: %w", query, err)
	}

	foods := make([]nutrition.Food, 0, len(records))
	for _, record := range records {
		foods = append(foods, toDomain(record))
	}
	return foods, nil
}

// Save upserts a record by name. Write-through of generated results lands
// here so repeat queries become cheap corpus hits.
func (r *Repo) Save(ctx context.Context, food nutrition.Food) error {
	name := strings.TrimSpace(food.Name)
	if name == "" {
		return errors.New("corpus: food name must not be empty")
	}

	record := models.Food{
		Name:            name,
		Category:        food.Category,
		CaloriesPer100:  food.CaloriesPer100,
		ProteinPer100:   food.ProteinPer100,
		CarbsPer100:     food.CarbsPer100,
		FatPer100:       food.FatPer100,
		IsLiquid:        food.IsLiquid,
		DefaultUnit:     food.DefaultUnit,
		DefaultQuantity: food.DefaultQuantity,
		CommonUnits:     models.JoinCommonUnits(food.CommonUnits),
		Origin:          string(food.Source),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Food
		result := tx.Where("LOWER(name) = ?", strings.ToLower(name)).First(&existing)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return tx.Create(&record).Error
			}
			return result.Error
		}
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		return tx.Save(&record).Error
	})
	if err != nil {
		return fmt.Errorf("corpus: save %q: %w", name, err)
	}
	return nil
}

func toDomain(record models.Food) nutrition.Food {
	food := nutrition.Food{
		ID:              int64(record.ID),
		Name:            record.Name,
		Category:        record.Category,
		CaloriesPer100:  record.CaloriesPer100,
		ProteinPer100:   record.ProteinPer100,
		CarbsPer100:     record.CarbsPer100,
		FatPer100:       record.FatPer100,
		IsLiquid:        record.IsLiquid,
		DefaultUnit:     record.DefaultUnit,
		DefaultQuantity: record.DefaultQuantity,
		CommonUnits:     record.SplitCommonUnits(),
		Source:          nutrition.SourceCorpus,
	}
	food.AccuracyTier = nutrition.ScoreAccuracy(food).Tier
	if food.DefaultQuantity <= 0 {
		food.DefaultQuantity = 1
	}
	if food.DefaultUnit == "" {
		food.DefaultUnit = "medium portion (150g)"
		if food.IsLiquid {
			food.DefaultUnit = "glass (250ml)"
		}
	}
	return food
}
