package impl

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"plaza/config"
	deliverycontext "plaza/internal/delivery/context"
	"plaza/internal/domain/entity"
	domainerrors "plaza/internal/domain/errors"
	"plaza/internal/domain/repository"
	"plaza/internal/domain/service"
	"plaza/internal/usecase"
	"plaza/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxNicknameLength = 50
	maxBioLength      = 500
)

// avatarExtensions maps accepted image content types to stored file extensions.
var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	media         service.MediaStorage
	qrCode        service.QRCodeService
	publisher     service.EventPublisher
	economy       *config.EconomyConfig
	maxAvatarSize int64
	now           func() time.Time
	logger        *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository
	Media       service.MediaStorage
	QRCode      service.QRCodeService
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	srv := &profileService{
		userRepo:    params.UserRepo,
		profileRepo: params.ProfileRepo,
		media:       params.Media,
		qrCode:      params.QRCode,
		publisher:   params.Publisher,
		economy:     &config.EconomyConfig{},
		now:         time.Now,
		logger:      params.Logger,
	}
	if params.Config != nil {
		if params.Config.Economy != nil {
			srv.economy = params.Config.Economy
		}
		if params.Config.Media != nil {
			srv.maxAvatarSize = params.Config.Media.MaxAvatarSize
		}
	}

	return srv
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return user, nil
}

// UpdateProfile saves nickname and bio, storing a new avatar first when one is uploaded.
func (srv *profileService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.User, error) {
	nickname := strings.TrimSpace(input.Nickname)
	bio := strings.TrimSpace(input.Bio)
	if utf8.RuneCountInString(nickname) > maxNicknameLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("暱稱最多 50 個字")
	}
	if utf8.RuneCountInString(bio) > maxBioLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("個人簡介最多 500 個字")
	}

	current, err := srv.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	details := repository.ProfileDetails{Nickname: &nickname, Bio: &bio}

	var newKey string
	if input.Avatar != nil {
		newKey, err = srv.storeAvatar(ctx, input.UserID, input.Avatar)
		if err != nil {
			return nil, err
		}
		details.AvatarKey = &newKey
	}

	if err := srv.profileRepo.UpdateDetails(ctx, input.UserID, details); err != nil {
		if newKey != "" {
			srv.deleteMedia(ctx, newKey)
		}

		return nil, errors.Wrap(err, "failed to update profile")
	}

	if newKey != "" && current.Profile != nil && current.Profile.AvatarKey != "" {
		srv.deleteMedia(ctx, current.Profile.AvatarKey)
	}

	return srv.GetProfile(ctx, input.UserID)
}

func (srv *profileService) storeAvatar(ctx context.Context, userID uuid.UUID, avatar *usecase.AvatarUpload) (string, error) {
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(avatar.ContentType, ";")[0]))
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", domainerrors.ErrMediaInvalid.WithDetails("僅支援 PNG、JPEG、GIF 或 WebP 圖片")
	}
	if srv.maxAvatarSize > 0 && avatar.Size > srv.maxAvatarSize {
		return "", domainerrors.ErrMediaInvalid.WithDetails("圖片不可超過 " + util.FormatBytes(srv.maxAvatarSize))
	}

	body := avatar.Body
	if srv.maxAvatarSize > 0 {
		body = io.LimitReader(body, srv.maxAvatarSize)
	}

	key := path.Join("avatars", userID.String(), uuid.NewString()+ext)
	if err := srv.media.Save(ctx, key, contentType, body); err != nil {
		return "", errors.Wrap(err, "failed to store avatar")
	}

	srv.log(ctx).Debug("Avatar stored", slog.String("userID", userID.String()), slog.String("key", key))

	return key, nil
}

func (srv *profileService) deleteMedia(ctx context.Context, key string) {
	if err := srv.media.Delete(ctx, key); err != nil && !errors.Is(err, service.ErrMediaNotFound) {
		srv.log(ctx).Warn("Failed to delete media object", slog.String("key", key), slog.Any("error", err))
	}
}

// checkinDay returns today's date in the economy time zone as a UTC midnight.
func (srv *profileService) checkinDay() time.Time {
	y, m, d := srv.now().In(srv.economy.Location()).Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (srv *profileService) DailyCheckin(ctx context.Context, userID uuid.UUID) (*usecase.CheckinOutput, error) {
	day := srv.checkinDay()

	claimed, err := srv.profileRepo.ClaimCheckin(ctx, userID, day, srv.economy.CheckinCoins, srv.economy.CheckinExperience)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check in")
	}

	profile, err := srv.profileRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload profile after checkin")
	}
	if !claimed {
		return nil, domainerrors.ErrAlreadyCheckedIn
	}

	srv.log(ctx).Info("Daily checkin", slog.String("userID", userID.String()), slog.Time("day", day))
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.EconomyEvent{
		Type:   entity.EventCheckin,
		UserID: userID,
		Amount: srv.economy.CheckinCoins,
	})

	return &usecase.CheckinOutput{
		CoinsGained:      srv.economy.CheckinCoins,
		ExperienceGained: srv.economy.CheckinExperience,
		Profile:          profile,
	}, nil
}

func (srv *profileService) TipQRCode(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	if _, err := srv.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	png, err := srv.qrCode.GenerateTipQR(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tip QR code")
	}

	return png, nil
}
