package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

type recordingLogger struct {
	infos []string
	warns []string
}

func (l *recordingLogger) Info(format string, v ...interface{})  { l.infos = append(l.infos, format) }
func (l *recordingLogger) Warn(format string, v ...interface{})  { l.warns = append(l.warns, format) }
func (l *recordingLogger) Error(format string, v ...interface{}) {}

var confirmed = ReservationConfirmed{
	ReservationID: 10,
	VenueName:     "Cancha Central",
	CustomerName:  "Lucia",
	Date:          "2025-03-01",
	StartTime:     "10:00",
	EndTime:       "11:00",
	PaymentMethod: "transfer",
}

func TestSESNotifier_NotifyReservationConfirmed(t *testing.T) {
	client := &fakeSES{}
	n := NewSESNotifier(client, Config{FromAddress: "noreply@courts.test", FromName: "Courts", Recipient: "ops@courts.test"}, &recordingLogger{})

	require.NoError(t, n.NotifyReservationConfirmed(context.Background(), confirmed))
	require.NotNil(t, client.input)

	assert.Equal(t, "Courts <noreply@courts.test>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"ops@courts.test"}, client.input.Destination.ToAddresses)

	subject := aws.ToString(client.input.Message.Subject.Data)
	assert.Contains(t, subject, "Cancha Central")
	assert.Contains(t, subject, "10:00 - 11:00")
	assert.True(t, strings.Contains(aws.ToString(client.input.Message.Body.Text.Data), "#10"))
}

func TestSESNotifier_SendError(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	n := NewSESNotifier(client, Config{FromAddress: "noreply@courts.test", Recipient: "ops@courts.test"}, &recordingLogger{})

	err := n.NotifyReservationConfirmed(context.Background(), confirmed)
	assert.ErrorIs(t, err, ErrSend)
}

func TestNew(t *testing.T) {
	log := &recordingLogger{}

	n, err := New(Config{Provider: ProviderLog}, log)
	require.NoError(t, err)
	assert.IsType(t, &LogNotifier{}, n)

	n, err = New(Config{Provider: "carrier-pigeon"}, log)
	require.NoError(t, err)
	assert.IsType(t, &LogNotifier{}, n)
	assert.Len(t, log.warns, 1)

	_, err = New(Config{Provider: ProviderSES}, log)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	n, err = New(Config{Provider: ProviderSES, Region: "us-east-1", FromAddress: "a@b.c", Recipient: "d@e.f"}, log)
	require.NoError(t, err)
	assert.IsType(t, &SESNotifier{}, n)
}

func TestLogNotifier(t *testing.T) {
	log := &recordingLogger{}
	require.NoError(t, NewLogNotifier(log).NotifyReservationConfirmed(context.Background(), confirmed))
	assert.Len(t, log.infos, 1)
}

func TestTimeRange(t *testing.T) {
	assert.Equal(t, "10:00", ReservationConfirmed{StartTime: "10:00"}.TimeRange())
}
