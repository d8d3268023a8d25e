package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/srgjo27/park_booking/internal/core/domain"
	"github.com/srgjo27/park_booking/internal/core/ports"
	"github.com/srgjo27/park_booking/internal/core/validation"
	"github.com/srgjo27/park_booking/internal/platform/monitoring"
	"go.uber.org/zap"
)

//go:embed templates
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
)

type NotificationConfig struct {
	OperatorEmail string
	OperatorPhone string
	ParkName      string
}

type NotificationResult struct {
	AdminEmail    domain.Delivery `json:"adminEmail"`
	CustomerEmail domain.Delivery `json:"customerEmail"`
}

// SendError is returned when at least one of the two emails could not be sent. Result holds the
// outcome of both attempts.
type SendError struct {
	Result *NotificationResult
}

func (e *SendError) Error() string {
	var failed []string
	if e.Result.AdminEmail.Status == domain.DeliveryFailed {
		failed = append(failed, "admin: "+e.Result.AdminEmail.Error)
	}
	if e.Result.CustomerEmail.Status == domain.DeliveryFailed {
		failed = append(failed, "customer: "+e.Result.CustomerEmail.Error)
	}
	return "failed to send booking emails: " + strings.Join(failed, "; ")
}

type emailView struct {
	FullName       string
	Email          string
	Phone          string
	TourPackage    string
	NumGuests      int
	StartDate      string
	EndDate        string
	PricePerPerson string
	TotalPrice     string
	ParkName       string
	OperatorEmail  string
	OperatorPhone  string
}

type NotificationService struct {
	mailer    ports.Mailer
	validator *validation.Validator
	cfg       NotificationConfig
	log       *zap.Logger
}

func NewNotificationService(mailer ports.Mailer, validator *validation.Validator, cfg NotificationConfig, log *zap.Logger) *NotificationService {
	return &NotificationService{
		mailer:    mailer,
		validator: validator,
		cfg:       cfg,
		log:       log,
	}
}

// Send validates a booking notification and emails the operator and the customer. Both sends
// are always attempted.
func (s *NotificationService) Send(ctx context.Context, payload domain.NotificationPayload) (*NotificationResult, error) {
	req, err := s.validator.Notification(payload)
	if err != nil {
		return nil, err
	}

	return s.send(ctx, *req)
}

// NotifyBooking sends the emails for an already validated request in process.
func (s *NotificationService) NotifyBooking(ctx context.Context, req domain.NotificationRequest) error {
	_, err := s.send(ctx, req)
	return err
}

func (s *NotificationService) send(ctx context.Context, req domain.NotificationRequest) (*NotificationResult, error) {
	adminEmail, customerEmail, err := s.render(req)
	if err != nil {
		return nil, err
	}

	result := &NotificationResult{}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.AdminEmail = s.deliver(ctx, "admin", adminEmail)
	}()
	go func() {
		defer wg.Done()
		result.CustomerEmail = s.deliver(ctx, "customer", customerEmail)
	}()
	wg.Wait()

	if result.AdminEmail.Status == domain.DeliveryFailed || result.CustomerEmail.Status == domain.DeliveryFailed {
		return result, &SendError{Result: result}
	}

	return result, nil
}

func (s *NotificationService) deliver(ctx context.Context, recipient string, email domain.Email) domain.Delivery {
	id, err := s.mailer.Send(ctx, email)
	if err != nil {
		monitoring.TrackEmail(recipient, "failure")
		s.log.Error("booking email failed", zap.String("recipient", recipient), zap.Error(err))
		return domain.Delivery{Status: domain.DeliveryFailed, Error: err.Error()}
	}

	monitoring.TrackEmail(recipient, "success")
	s.log.Info("booking email sent", zap.String("recipient", recipient), zap.String("id", id))
	return domain.Delivery{ID: id, Status: domain.DeliverySent}
}

func (s *NotificationService) render(req domain.NotificationRequest) (domain.Email, domain.Email, error) {
	view := emailView{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		TourPackage:    req.TourPackage,
		NumGuests:      req.NumGuests,
		StartDate:      req.StartDate.Display(),
		EndDate:        req.EndDate.Display(),
		PricePerPerson: req.PricePerPerson.StringFixed(2),
		TotalPrice:     req.TotalPrice().StringFixed(2),
		ParkName:       s.cfg.ParkName,
		OperatorEmail:  s.cfg.OperatorEmail,
		OperatorPhone:  s.cfg.OperatorPhone,
	}

	adminHTML, adminText, err := renderPair("admin_booking", view)
	if err != nil {
		return domain.Email{}, domain.Email{}, err
	}

	customerHTML, customerText, err := renderPair("customer_confirmation", view)
	if err != nil {
		return domain.Email{}, domain.Email{}, err
	}

	admin := domain.Email{
		To:       s.cfg.OperatorEmail,
		ToName:   s.cfg.ParkName,
		Subject:  subjectLine("New Booking: " + req.TourPackage),
		HTMLBody: adminHTML,
		TextBody: adminText,
	}

	customer := domain.Email{
		To:       req.Email,
		ToName:   req.FullName,
		Subject:  subjectLine("Booking Confirmation - " + s.cfg.ParkName),
		HTMLBody: customerHTML,
		TextBody: customerText,
	}

	return admin, customer, nil
}

func renderPair(name string, view emailView) (string, string, error) {
	var html, text bytes.Buffer

	if err := htmlTemplates.ExecuteTemplate(&html, name+".html", view); err != nil {
		return "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	if err := textTemplates.ExecuteTemplate(&text, name+".txt", view); err != nil {
		return "", "", fmt.Errorf("render %s text: %w", name, err)
	}

	return html.String(), text.String(), nil
}

func subjectLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
