package services

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"caretrack/internal/shared/biztime"
)

// ComplaintNumberGenerator issues C-YYYYMMDD-NNNN numbers. The per-day
// sequence is seeded from the complaints table on first use so numbers
// stay monotonic across restarts.
type ComplaintNumberGenerator struct {
	db    *gorm.DB
	mu    sync.Mutex
	cache map[string]int
}

func NewComplaintNumberGenerator(db *gorm.DB) *ComplaintNumberGenerator {
	return &ComplaintNumberGenerator{
		db:    db,
		cache: make(map[string]int),
	}
}

func (g *ComplaintNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateStr := biztime.NowUTC().Format("20060102")

	seq, err := g.nextSequence(ctx, dateStr)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("C-%s-%04d", dateStr, seq), nil
}

func (g *ComplaintNumberGenerator) nextSequence(ctx context.Context, dateStr string) (int, error) {
	if seq, ok := g.cache[dateStr]; ok {
		g.cache[dateStr] = seq + 1
		return seq + 1, nil
	}

	var maxNumber string
	prefix := fmt.Sprintf("C-%s-", dateStr)

	err := g.db.WithContext(ctx).
		Table("complaints").
		Select("MAX(number)").
		Where("number LIKE ?", prefix+"%").
		Scan(&maxNumber).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return 0, fmt.Errorf("failed to get max complaint number: %w", err)
	}

	seq := 1
	if maxNumber != "" {
		fmt.Sscanf(maxNumber, prefix+"%d", &seq)
		seq++
	}

	g.cache[dateStr] = seq
	return seq, nil
}
