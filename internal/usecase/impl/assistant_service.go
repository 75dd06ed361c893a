package impl

import (
	"context"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"plaza/config"
	deliverycontext "plaza/internal/delivery/context"
	domainerrors "plaza/internal/domain/errors"
	"plaza/internal/domain/repository"
	"plaza/internal/domain/service"
	"plaza/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// DegradedReplyPrefix opens the in-character reply sent when the remote model fails.
const DegradedReplyPrefix = "【訊號中斷】霓虹網路出現干擾，廣場助手暫時無法連線"

var assistantPrompt = template.Must(template.New("assistant").Parse(
	`你是「賽博廣場」的導覽 AI，說話帶著霓虹城市的科技感，但回答要清楚、友善、精簡。
廣場的玩法：每日簽到領取金幣與經驗、在商店購買道具、購買與轉售土地、打賞其他居民、在知識節點發表討論。

目前與你對話的居民：
- 暱稱：{{.Nickname}}
- 等級：{{.Level}}
- 金幣：{{.Coins}}

居民說：{{.Message}}
`))

type assistantPromptData struct {
	Nickname string
	Level    int
	Coins    int
	Message  string
}

// assistantService implements the AssistantUsecase interface.
type assistantService struct {
	userRepo  repository.UserRepository
	generator service.TextGenerator
	timeout   time.Duration
	logger    *slog.Logger
}

// AssistantServiceParams holds dependencies for AssistantService, injected by Fx.
type AssistantServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Generator service.TextGenerator
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(params AssistantServiceParams) usecase.AssistantUsecase {
	var timeout time.Duration
	if params.Config != nil && params.Config.Assistant != nil {
		timeout = params.Config.Assistant.Timeout
	}

	return &assistantService{
		userRepo:  params.UserRepo,
		generator: params.Generator,
		timeout:   timeout,
		logger:    params.Logger,
	}
}

func (srv *assistantService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *assistantService) Chat(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	// Blank input is rejected, but the prompt carries the message as typed.
	if strings.TrimSpace(message) == "" {
		return "", domainerrors.ErrValidationFailed.WithDetails("訊息不可為空")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", domainerrors.ErrUserNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to load chat user")
	}

	data := assistantPromptData{
		Nickname: user.Username,
		Message:  message,
	}
	if user.Profile != nil {
		data.Nickname = user.Profile.DisplayName(user.Username)
		data.Level = user.Profile.Level
		data.Coins = user.Profile.Coins
	}

	var prompt strings.Builder
	if err := assistantPrompt.Execute(&prompt, data); err != nil {
		return "", errors.Wrap(err, "failed to render assistant prompt")
	}

	callCtx := ctx
	if srv.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, srv.timeout)
		defer cancel()
	}

	reply, err := srv.generator.GenerateText(callCtx, prompt.String())
	if err != nil {
		srv.log(ctx).Warn("Assistant call failed", slog.String("userID", userID.String()), slog.Any("error", err))

		return DegradedReplyPrefix + "：" + err.Error(), nil
	}

	return reply, nil
}
