package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	ProviderSES = "ses"
	ProviderLog = "log"

	defaultSendTimeout = 10 * time.Second
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SESAPI подмножество клиента SES, используемое отправителем
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Config настройки отправителя уведомлений
type Config struct {
	Provider        string
	FromAddress     string
	FromName        string
	Recipient       string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// Notifier отправляет уведомления о подтверждённых бронированиях
type Notifier interface {
	NotifyReservationConfirmed(ctx context.Context, n ReservationConfirmed) error
}

// New создает отправителя по конфигурации: "ses" использует AWS SES, "log" только пишет в лог
func New(cfg Config, log Logger) (Notifier, error) {
	switch cfg.Provider {
	case ProviderSES:
		if cfg.Region == "" || cfg.FromAddress == "" || cfg.Recipient == "" {
			return nil, fmt.Errorf("%w: ses requires region, from address and recipient", ErrInvalidConfig)
		}
		awsCfg := aws.Config{
			Region: cfg.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			),
		}
		return NewSESNotifier(ses.NewFromConfig(awsCfg), cfg, log), nil
	case ProviderLog, "":
		return NewLogNotifier(log), nil
	default:
		log.Warn("Notifier: unknown provider %q, falling back to log", cfg.Provider)
		return NewLogNotifier(log), nil
	}
}

// SESNotifier отправляет письма через AWS SES
type SESNotifier struct {
	client    SESAPI
	source    string
	recipient string
	timeout   time.Duration
	log       Logger
}

// NewSESNotifier создает отправителя поверх готового клиента SES
func NewSESNotifier(client SESAPI, cfg Config, log Logger) *SESNotifier {
	source := cfg.FromAddress
	if cfg.FromName != "" {
		source = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}
	return &SESNotifier{
		client:    client,
		source:    source,
		recipient: cfg.Recipient,
		timeout:   defaultSendTimeout,
		log:       log,
	}
}

// NotifyReservationConfirmed отправляет письмо о подтверждённом бронировании
func (s *SESNotifier) NotifyReservationConfirmed(ctx context.Context, n ReservationConfirmed) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	subject, body := render(n)
	input := &ses.SendEmailInput{
		Source: aws.String(s.source),
		Destination: &sestypes.Destination{
			ToAddresses: []string{s.recipient},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &sestypes.Body{
				Text: &sestypes.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	out, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("%w: reservation=%d: %v", ErrSend, n.ReservationID, err)
	}

	s.log.Info("Notifier: reservation=%d confirmation sent, message_id=%s", n.ReservationID, aws.ToString(out.MessageId))
	return nil
}

// LogNotifier пишет уведомления в лог (локальный запуск и тесты)
type LogNotifier struct {
	log Logger
}

func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) NotifyReservationConfirmed(_ context.Context, n ReservationConfirmed) error {
	subject, _ := render(n)
	l.log.Info("Notifier: %s (reservation=%d)", subject, n.ReservationID)
	return nil
}

func render(n ReservationConfirmed) (subject, body string) {
	subject = fmt.Sprintf("Бронирование подтверждено: %s, %s %s", n.VenueName, n.Date, n.TimeRange())
	body = fmt.Sprintf(
		"Бронирование #%d подтверждено.\nПлощадка: %s\nДата: %s\nВремя: %s\nКлиент: %s\nОплата: %s\n",
		n.ReservationID, n.VenueName, n.Date, n.TimeRange(), n.CustomerName, n.PaymentMethod,
	)
	return subject, body
}
