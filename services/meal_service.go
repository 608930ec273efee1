package services

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/garciajoao467/app-nutri/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FoodExtractor turns a free-text meal phrase into structured food items.
type FoodExtractor interface {
	ExtractFoods(ctx context.Context, phrase string) ([]ExtractedFoodItem, error)
}

// NutrientResolver looks one item up in the nutrition database. A nil
// result means the item did not resolve; that is expected absence, not an
// error.
type NutrientResolver interface {
	Resolve(ctx context.Context, item ExtractedFoodItem) *NutrientVector
}

// MealService runs the registration pipeline: interpret the phrase, resolve
// each item, sum whatever resolved, persist one record. Best-effort
// aggregation with an all-or-nothing floor: partial resolution is a full
// success over the resolved subset, but nothing is ever partially written.
type MealService struct {
	db        *gorm.DB
	extractor FoodExtractor
	resolver  NutrientResolver
	log       *zap.SugaredLogger
}

func NewMealService(db *gorm.DB, extractor FoodExtractor, resolver NutrientResolver, log *zap.SugaredLogger) *MealService {
	return &MealService{db: db, extractor: extractor, resolver: resolver, log: log}
}

func (s *MealService) RegisterMeal(ctx context.Context, user *models.User, phrase, mealType string) (*models.MealRecord, error) {
	s.log.Infow("registering meal", "user", user.Email, "phrase", phrase)

	items, err := s.extractor.ExtractFoods(ctx, phrase)
	if err != nil {
		return nil, err
	}

	// Items are independent, so resolve them concurrently. The sum is
	// commutative; accumulation order does not matter.
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		resolved int
		totals   NutrientVector
	)
	for _, item := range items {
		wg.Add(1)
		go func(item ExtractedFoodItem) {
			defer wg.Done()
			nut := s.resolver.Resolve(ctx, item)
			if nut == nil {
				return
			}
			mu.Lock()
			resolved++
			totals.Calories += nut.Calories
			totals.Protein += nut.Protein
			totals.Fat += nut.Fat
			totals.Carbs += nut.Carbs
			mu.Unlock()
		}(item)
	}
	wg.Wait()

	if resolved == 0 {
		s.log.Warnw("no extracted item resolved", "items", len(items))
		return nil, &ServiceError{
			Kind:    KindNoItemsResolved,
			Message: "none of the described foods were found in the nutrition database",
			Status:  http.StatusNotFound,
		}
	}

	record := &models.MealRecord{
		UserID:        user.ID,
		LoggedAt:      time.Now().UTC(),
		MealType:      mealType,
		TotalCalories: round2(totals.Calories),
		TotalProtein:  round2(totals.Protein),
		TotalFat:      round2(totals.Fat),
		TotalCarbs:    round2(totals.Carbs),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if err != nil {
		s.log.Errorw("failed to save meal record", "error", err)
		return nil, persistenceError(err)
	}

	s.log.Infow("meal registered",
		"meal_id", record.ID,
		"resolved", resolved,
		"of", len(items),
		"calories", record.TotalCalories,
	)
	return record, nil
}
