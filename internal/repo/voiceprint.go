package repo

import (
	"VoiceKeeper/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// VoiceprintRepository — хранение зашифрованных голосовых шаблонов.
type VoiceprintRepository interface {
	// Upsert сохраняет шаблон пользователя, заменяя предыдущий.
	Upsert(ctx context.Context, vp *model.Voiceprint) error
	// GetByUserID возвращает gorm.ErrRecordNotFound, если шаблона нет.
	GetByUserID(ctx context.Context, userID int64) (*model.Voiceprint, error)
	// DeleteByUserID возвращает deleted=false, если удалять было нечего.
	DeleteByUserID(ctx context.Context, userID int64) (deleted bool, err error)
}

type voiceprintRepo struct {
	db *gorm.DB
}

// NewVoiceprintRepository создаёт реализацию репозитория для Voiceprint.
func NewVoiceprintRepository(db *gorm.DB) VoiceprintRepository {
	return &voiceprintRepo{db: db}
}

func (r *voiceprintRepo) Upsert(ctx context.Context, vp *model.Voiceprint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Voiceprint
		err := tx.Where("user_id = ?", vp.UserID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(vp).Error
		}
		if err != nil {
			return err
		}
		// перезапись: id и created_at остаются от первой регистрации
		vp.ID = existing.ID
		vp.CreatedAt = existing.CreatedAt
		if err := tx.Model(&existing).Updates(map[string]any{
			"template":    vp.Template,
			"vector_size": vp.VectorSize,
		}).Error; err != nil {
			return err
		}
		vp.UpdatedAt = existing.UpdatedAt
		return nil
	})
}

func (r *voiceprintRepo) GetByUserID(ctx context.Context, userID int64) (*model.Voiceprint, error) {
	var vp model.Voiceprint
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&vp).Error; err != nil {
		return nil, err
	}
	return &vp, nil
}

func (r *voiceprintRepo) DeleteByUserID(ctx context.Context, userID int64) (bool, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Voiceprint{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
