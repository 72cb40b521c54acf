package service

import (
	"VoiceKeeper/internal/model"
	"VoiceKeeper/internal/repo"
	"VoiceKeeper/internal/voice"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotEnrolled   = errors.New("voice is not enrolled")
	ErrNoVoice       = errors.New("no voice in audio sample")
	ErrAudioTooLarge = errors.New("audio sample too large")
	// ErrTemplateStale — шаблон снят при другой длине вектора, нужна перерегистрация.
	ErrTemplateStale = errors.New("stored voiceprint does not match current engine settings")
)

// VoiceService связывает движок голоса с хранилищем шаблонов.
type VoiceService struct {
	engine        *voice.Engine
	repo          repo.VoiceprintRepository
	logger        *zap.SugaredLogger
	maxAudioBytes int
}

// NewVoiceService создаёт сервис. maxAudioBytes <= 0 отключает ограничение размера.
func NewVoiceService(engine *voice.Engine, r repo.VoiceprintRepository, logger *zap.SugaredLogger, maxAudioBytes int) *VoiceService {
	return &VoiceService{engine: engine, repo: r, logger: logger, maxAudioBytes: maxAudioBytes}
}

// Enroll регистрирует (или перерегистрирует) голос пользователя.
// Образец без голоса отклоняется с ErrNoVoice.
func (s *VoiceService) Enroll(ctx context.Context, userID int64, audio string) (*model.Voiceprint, error) {
	if err := s.checkSize(audio); err != nil {
		return nil, err
	}
	raw, err := voice.DecodeAudio(audio)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", voice.ErrEnrollment, err)
	}
	if det := s.engine.DetectVoiceBytes(raw); !det.VoiceDetected {
		s.logger.Infow("enroll rejected", "user_id", userID, "reason", det.Message)
		return nil, fmt.Errorf("%w: %s", ErrNoVoice, det.Message)
	}

	template, err := s.engine.Enroll(audio)
	if err != nil {
		return nil, err
	}
	vp := &model.Voiceprint{
		ID:         uuid.NewString(),
		UserID:     userID,
		Template:   template,
		VectorSize: s.engine.Settings().VectorSize,
	}
	if err := s.repo.Upsert(ctx, vp); err != nil {
		return nil, err
	}
	s.logger.Infow("voiceprint enrolled", "user_id", userID, "voiceprint_id", vp.ID)
	return vp, nil
}

// Verify сравнивает образец с сохранённым шаблоном пользователя.
func (s *VoiceService) Verify(ctx context.Context, userID int64, audio string, tolerance *float64) (voice.Result, error) {
	if err := s.checkSize(audio); err != nil {
		return voice.Result{}, err
	}
	vp, err := s.Status(ctx, userID)
	if err != nil {
		return voice.Result{}, err
	}
	size := s.engine.Settings().VectorSize
	if vp.VectorSize != 0 && vp.VectorSize != size {
		s.logger.Errorw("stale voiceprint", "user_id", userID, "template_size", vp.VectorSize, "engine_size", size)
		return voice.Result{}, fmt.Errorf("%w: enrolled with vector size %d, engine uses %d", ErrTemplateStale, vp.VectorSize, size)
	}
	raw, err := voice.DecodeAudio(audio)
	if err != nil {
		return voice.Result{}, fmt.Errorf("%w: %w", voice.ErrVerification, err)
	}
	res, err := s.engine.Verify(audio, vp.Template, tolerance)
	if err != nil {
		// непустой образец извлекается всегда, значит не совпала форма шаблона
		var extErr *voice.ExtractionError
		if len(raw) > 0 && errors.As(err, &extErr) {
			s.logger.Errorw("stale voiceprint", "user_id", userID, "error", err)
			return voice.Result{}, fmt.Errorf("%w: %w", ErrTemplateStale, err)
		}
		return voice.Result{}, err
	}
	s.logger.Infow("voice verified",
		"user_id", userID,
		"success", res.Success,
		"similarity", res.Similarity,
		"threshold", res.Threshold,
	)
	return res, nil
}

// Detect прогоняет эвристику наличия голоса. Ошибок не возвращает.
func (s *VoiceService) Detect(audio string) voice.Detection {
	if err := s.checkSize(audio); err != nil {
		return voice.Detection{Message: "Error: " + err.Error()}
	}
	return s.engine.DetectVoice(audio)
}

// Status возвращает сохранённый шаблон или ErrNotEnrolled.
func (s *VoiceService) Status(ctx context.Context, userID int64) (*model.Voiceprint, error) {
	vp, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && vp == nil) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}
	return vp, nil
}

// Forget удаляет шаблон пользователя.
func (s *VoiceService) Forget(ctx context.Context, userID int64) error {
	deleted, err := s.repo.DeleteByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotEnrolled
	}
	s.logger.Infow("voiceprint deleted", "user_id", userID)
	return nil
}

// checkSize оценивает размер декодированного аудио по длине base64.
func (s *VoiceService) checkSize(audio string) error {
	if s.maxAudioBytes <= 0 {
		return nil
	}
	if len(audio)/4*3 > s.maxAudioBytes {
		return ErrAudioTooLarge
	}
	return nil
}
