package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/velourstudio/salon-scheduler/internal/audit"
	domain "github.com/velourstudio/salon-scheduler/internal/domain/appointment"
	infraRepo "github.com/velourstudio/salon-scheduler/internal/infra/repository"
	"github.com/velourstudio/salon-scheduler/internal/models"
	"github.com/velourstudio/salon-scheduler/internal/sms"
	ucWebhook "github.com/velourstudio/salon-scheduler/internal/usecase/webhook"
)

const (
	testWebhookSecret = "webhook-secret"
	testWebhookURL    = "https://api.example.com/webhooks/sms"
)

type recordingGateway struct {
	sent []string
}

func (g *recordingGateway) Send(_ context.Context, to, body string) error {
	g.sent = append(g.sent, to+": "+body)
	return nil
}

func newWebhookTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, *recordingGateway) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.Appointment{},
		&models.WebhookEvent{},
		&models.AuditLog{},
	))

	gw := &recordingGateway{}

	processor := ucWebhook.NewProcessInbound(
		infraRepo.NewAppointmentGormRepository(db),
		infraRepo.NewClientGormRepository(db),
		infraRepo.NewWebhookEventGormRepository(db),
		gw,
		audit.NewDispatcher(audit.New(db)),
		zerolog.Nop(),
	)

	handler := NewSMSWebhookHandler(
		processor,
		sms.NewValidator(testWebhookSecret),
		testWebhookURL,
		zerolog.Nop(),
	)

	r := gin.New()
	r.POST("/webhooks/sms", handler.Inbound)
	return r, db, gw
}

func postInbound(t *testing.T, r *gin.Engine, params map[string]string, signature string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	req := httptest.NewRequest(http.MethodPost, "/webhooks/sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Gateway-Signature", signature)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func signedParams(body string) map[string]string {
	return map[string]string{
		"MessageSid": "SM001",
		"From":       "+17145550100",
		"To":         "+17145550199",
		"Body":       body,
	}
}

func TestInboundWebhook_BadSignatureLeavesNoTrace(t *testing.T) {
	r, db, gw := newWebhookTestEnv(t)

	params := signedParams("yes")
	rec := postInbound(t, r, params, "bogus-signature")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, gw.sent)

	var count int64
	db.Model(&models.WebhookEvent{}).Count(&count)
	assert.Zero(t, count, "a forged delivery must not reach the ledger")
}

func TestInboundWebhook_ConfirmFlow(t *testing.T) {
	r, db, gw := newWebhookTestEnv(t)

	client := models.Client{Phone: "7145550100"}
	require.NoError(t, db.Create(&client).Error)

	ap := models.Appointment{
		LocationID:   1,
		TechnicianID: 1,
		ClientID:     client.ID,
		Status:       string(domain.StatusPending),
		StartTime:    time.Now().Add(24 * time.Hour),
		EndTime:      time.Now().Add(25 * time.Hour),
	}
	require.NoError(t, db.Create(&ap).Error)

	params := signedParams("YES")
	sig := sms.NewValidator(testWebhookSecret).Expected(testWebhookURL, params)
	rec := postInbound(t, r, params, sig)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String(), "acknowledgment body is empty")

	var stored models.Appointment
	require.NoError(t, db.First(&stored, ap.ID).Error)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)
	assert.Equal(t, "client_sms", stored.ConfirmedBy)

	require.Len(t, gw.sent, 1)
	assert.Contains(t, gw.sent[0], "+17145550100")

	var count int64
	db.Model(&models.WebhookEvent{}).Where("id = ?", "SM001").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestInboundWebhook_ReplayIsIdempotent(t *testing.T) {
	r, db, gw := newWebhookTestEnv(t)

	client := models.Client{Phone: "7145550100"}
	require.NoError(t, db.Create(&client).Error)

	ap := models.Appointment{
		ClientID:  client.ID,
		Status:    string(domain.StatusPending),
		StartTime: time.Now().Add(24 * time.Hour),
		EndTime:   time.Now().Add(25 * time.Hour),
	}
	require.NoError(t, db.Create(&ap).Error)

	params := signedParams("yes")
	sig := sms.NewValidator(testWebhookSecret).Expected(testWebhookURL, params)

	first := postInbound(t, r, params, sig)
	second := postInbound(t, r, params, sig)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Len(t, gw.sent, 1, "the replay must not send a second ack")
}

func TestInboundWebhook_MissingFieldsAcknowledgedWithoutProcessing(t *testing.T) {
	r, db, gw := newWebhookTestEnv(t)

	params := map[string]string{"Body": "yes"}
	sig := sms.NewValidator(testWebhookSecret).Expected(testWebhookURL, params)
	rec := postInbound(t, r, params, sig)

	// Signed but unusable: acknowledged so the gateway stops
	// redelivering a message that can never be processed.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, gw.sent)

	var count int64
	db.Model(&models.WebhookEvent{}).Count(&count)
	assert.Zero(t, count)
}
