package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/meeting-planner/internal/models"
)

// ConflictDetector вычисляет цветовую классификацию встречи по пересечениям
// с другими встречами того же пользователя
type ConflictDetector struct {
	store Store
}

func NewConflictDetector(store Store) *ConflictDetector {
	return &ConflictDetector{store: store}
}

// Classify возвращает ConflictColor, если у пользователя есть хотя бы одна
// встреча, чьё начало или конец лежит в [start, end] включительно, иначе
// DefaultColor. excludeID исключает редактируемую встречу, чтобы она не
// конфликтовала сама с собой. Пустой результат выборки — не ошибка.
func (d *ConflictDetector) Classify(ownerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (models.ColorPair, error) {
	overlapping, err := d.store.FindOverlapping(ownerID, start, end, excludeID)
	if err != nil {
		return models.ColorPair{}, fmt.Errorf("find overlapping meetings: %w", err)
	}

	if len(overlapping) == 0 {
		return models.DefaultColor, nil
	}
	return models.ConflictColor, nil
}
