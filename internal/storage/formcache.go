package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ToxicBeastt/shuttle-booking/internal/models"
)

// FormCache mirrors the in-progress passenger form under FormKey so a
// returning client can resume where it left off.
type FormCache struct {
	kv     KV
	logger *zap.Logger
}

func NewFormCache(kv KV, logger *zap.Logger) *FormCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormCache{kv: kv, logger: logger}
}

// Load returns the saved draft, or an empty one if nothing usable is stored.
func (f *FormCache) Load(ctx context.Context) models.FormData {
	data, ok, err := f.kv.Get(ctx, FormKey)
	if err != nil {
		f.logger.Warn("reading form draft failed", zap.Error(err))
		return models.FormData{}
	}
	if !ok {
		return models.FormData{}
	}

	var form models.FormData
	if err := json.Unmarshal(data, &form); err != nil {
		f.logger.Warn("stored form draft is corrupt", zap.Error(err))
		return models.FormData{}
	}
	return form
}

func (f *FormCache) Save(ctx context.Context, form models.FormData) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("encode form draft: %w", err)
	}
	if err := f.kv.Put(ctx, FormKey, data); err != nil {
		return fmt.Errorf("store form draft: %w", err)
	}
	return nil
}

func (f *FormCache) Clear(ctx context.Context) error {
	return f.kv.Clear(ctx, FormKey)
}
