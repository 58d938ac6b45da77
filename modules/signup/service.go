package signup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/casadosaber/signup/handler"
	"github.com/casadosaber/signup/pkg/cep"
	"github.com/casadosaber/signup/pkg/email"
	"github.com/casadosaber/signup/pkg/field"
	"github.com/casadosaber/signup/pkg/file"
	"github.com/casadosaber/signup/pkg/i18n"
	"github.com/casadosaber/signup/pkg/logger"
	"github.com/casadosaber/signup/pkg/mask"
	"github.com/casadosaber/signup/pkg/metrics"
	"github.com/casadosaber/signup/pkg/ratelimiter"
	"github.com/casadosaber/signup/pkg/sanitizer"
)

// Service validates, masks and stores volunteer signups.
type Service struct {
	cfg          Config
	fields       []field.Field
	validator    *field.Validator
	translator   field.Translator
	provider     cep.Provider
	tracker      *cep.Tracker
	sink         Sink
	storage      file.Storage
	mailer       email.Sender
	metrics      *metrics.Metrics
	log          *slog.Logger
	views        *Views
	errorHandler handler.ErrorHandler[handler.Context]
	submitLimit  ratelimiter.RateLimiter
	lookupLimit  ratelimiter.RateLimiter
	now          func() time.Time

	wg sync.WaitGroup
}

type Option func(*Service)

// WithLookup enables address lookups through p.
func WithLookup(p cep.Provider) Option {
	return func(s *Service) { s.provider = p }
}

// WithStorage stores uploaded résumés. Without it uploads are validated
// and discarded.
func WithStorage(st file.Storage) Option {
	return func(s *Service) { s.storage = st }
}

// WithMailer sends a confirmation e-mail after each accepted submission.
func WithMailer(m email.Sender) Option {
	return func(s *Service) { s.mailer = m }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTranslator replaces the embedded translations.
func WithTranslator(t field.Translator) Option {
	return func(s *Service) { s.translator = t }
}

func WithViews(v *Views) Option {
	return func(s *Service) { s.views = v }
}

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(s *Service) { s.errorHandler = h }
}

// WithSubmitLimit throttles POST /signup per client address.
func WithSubmitLimit(rl ratelimiter.RateLimiter) Option {
	return func(s *Service) { s.submitLimit = rl }
}

// WithLookupLimit throttles address lookups per client address.
func WithLookupLimit(rl ratelimiter.RateLimiter) Option {
	return func(s *Service) { s.lookupLimit = rl }
}

// WithClock sets the source of "today" for age checks and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds the signup service. Only sink is mandatory.
func NewService(cfg Config, sink Sink, opts ...Option) (*Service, error) {
	if sink == nil {
		return nil, fmt.Errorf("%w: nil sink", ErrFailedToStore)
	}

	s := &Service{
		cfg:  cfg,
		sink: sink,
		log:  slog.New(slog.DiscardHandler),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.translator == nil {
		tr, err := NewTranslator(context.Background(), i18n.WithDefaultLanguage(cfg.DefaultLanguage))
		if err != nil {
			return nil, fmt.Errorf("signup: load translations: %w", err)
		}
		s.translator = tr
	}
	s.views = s.views.withDefaults()
	s.fields = Fields(cfg.Areas)
	s.validator = field.New(
		field.WithClock(s.now),
		field.WithMaxFileSize(cfg.MaxUploadSize),
		field.WithAllowedFileTypes(cfg.AllowedFileTypes...),
		field.WithMinAge(cfg.MinAge),
		field.WithTranslator(s.translator),
		field.WithLanguage(cfg.DefaultLanguage),
		field.WithObserver(func(res field.Result) {
			s.metrics.ObserveValidation(res.Kind.String(), string(res.Status))
		}),
	)
	if s.provider != nil {
		s.tracker = cep.NewTracker(s.provider, cfg.LookupTimeout)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
			Translator: s.translator,
			ErrorToast: func(msg string) templ.Component { return s.views.FormAlert(AlertError, msg) },
		})
	}
	return s, nil
}

// Fields returns the form definition.
func (s *Service) Fields() []field.Field {
	return s.fields
}

// validatorFor returns the validator speaking the request's language.
func (s *Service) validatorFor(ctx context.Context) *field.Validator {
	return s.validator.Lang(i18n.GetLocale(ctx))
}

// MaskRequest is a keystroke in a masked input. Kind may be omitted when
// Field names a maskable field. A nil Cursor means the end of Value.
type MaskRequest struct {
	Field     string `json:"field,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Value     string `json:"value"`
	Cursor    *int   `json:"cursor,omitempty"`
	Backspace bool   `json:"backspace,omitempty"`
}

type MaskResult struct {
	Field  string `json:"field,omitempty"`
	Masked string `json:"masked"`
	Digits string `json:"digits"`
	Cursor int    `json:"cursor"`
}

// Mask reformats a value after a keystroke. With Backspace set the digit
// before the cursor is deleted, skipping over separators.
func (s *Service) Mask(req MaskRequest) (MaskResult, error) {
	kind, err := s.maskKind(req)
	if err != nil {
		return MaskResult{}, err
	}

	cursor := len(req.Value)
	if req.Cursor != nil {
		cursor = *req.Cursor
	}

	var edit mask.Edit
	if req.Backspace {
		edit = mask.Backspace(req.Value, cursor, kind)
	} else {
		edit = mask.Reformat(req.Value, cursor, kind)
	}

	return MaskResult{
		Field:  req.Field,
		Masked: edit.Value,
		Digits: mask.ExtractDigits(edit.Value),
		Cursor: edit.Cursor,
	}, nil
}

func (s *Service) maskKind(req MaskRequest) (mask.Kind, error) {
	if req.Kind != "" {
		return mask.ParseKind(req.Kind)
	}
	f, ok := lookupField(s.fields, req.Field)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, req.Field)
	}
	kind, ok := f.Kind.Mask()
	if !ok {
		return 0, fmt.Errorf("%w: %q has no mask", mask.ErrUnknownKind, req.Field)
	}
	return kind, nil
}

// FileMeta describes a file picked in the browser, before upload.
type FileMeta struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ValidateRequest asks for the state of one field. Mode is "live" while
// the user types and anything else on blur.
type ValidateRequest struct {
	Name     string    `path:"name" json:"-"`
	Value    string    `json:"value"`
	Selected []string  `json:"selected,omitempty"`
	File     *FileMeta `json:"file,omitempty"`
	Mode     string    `json:"mode,omitempty"`
}

// ValidateField judges a single field.
func (s *Service) ValidateField(ctx context.Context, req ValidateRequest) (field.Result, error) {
	f, ok := lookupField(s.fields, req.Name)
	if !ok {
		return field.Result{}, fmt.Errorf("%w: %q", ErrUnknownField, req.Name)
	}

	val := field.Value{Text: req.Value, Selected: req.Selected}
	if req.File != nil {
		val.File = &field.Upload{Filename: req.File.Filename, ContentType: req.File.ContentType, Size: req.File.Size}
	}
	return s.validatorFor(ctx).ValidateMode(f, val, field.ParseMode(req.Mode)), nil
}

// LookupResult is the outcome of an address lookup. Address is set only
// when the postal code was found.
type LookupResult struct {
	Address *cep.Address `json:"address,omitempty"`
	Result  field.Result `json:"result"`
}

// LookupCEP resolves raw for the input identified by key. A newer lookup for
// the same key makes this one fail with cep.ErrSuperseded; an empty key is
// never superseded. The error is
// cep.ErrInvalidCEP, cep.ErrNotFound or cep.ErrUnavailable otherwise; the
// first two come with an invalid Result to show.
func (s *Service) LookupCEP(ctx context.Context, key, raw string) (LookupResult, error) {
	f, _ := lookupField(s.fields, FieldCEP)
	v := s.validatorFor(ctx)
	val := field.Text(raw)
	start := time.Now()

	if _, err := cep.Normalize(raw); err != nil {
		s.metrics.ObserveLookup("invalid", time.Since(start))
		return LookupResult{Result: v.Fail(f, val, field.ReasonStructuralInvalid, field.KeyCEP)}, err
	}
	if s.tracker == nil {
		s.metrics.ObserveLookup("unavailable", time.Since(start))
		return LookupResult{}, fmt.Errorf("%w: no provider configured", cep.ErrUnavailable)
	}

	addr, err := s.tracker.Lookup(ctx, key, raw)
	switch {
	case err == nil:
		s.metrics.ObserveLookup("found", time.Since(start))
		return LookupResult{Address: &addr, Result: v.Validate(f, val)}, nil

	case errors.Is(err, cep.ErrSuperseded):
		s.metrics.ObserveLookup("superseded", time.Since(start))
		return LookupResult{}, err

	case errors.Is(err, cep.ErrNotFound):
		s.metrics.ObserveLookup("not_found", time.Since(start))
		return LookupResult{Result: v.Fail(f, val, field.ReasonLookupNotFound, field.KeyCEPNotFound)}, err

	case errors.Is(err, cep.ErrInvalidCEP):
		s.metrics.ObserveLookup("invalid", time.Since(start))
		return LookupResult{Result: v.Fail(f, val, field.ReasonStructuralInvalid, field.KeyCEP)}, err

	case ctx.Err() != nil:
		return LookupResult{}, ctx.Err()

	default:
		s.metrics.ObserveLookup("unavailable", time.Since(start))
		s.log.WarnContext(ctx, "address lookup unavailable",
			logger.Component("signup"),
			logger.CEP(raw),
			logger.Error(err),
		)
		return LookupResult{}, errors.Join(cep.ErrUnavailable, err)
	}
}

// SubmitRequest is the signup form as posted by the browser.
type SubmitRequest struct {
	Nome            string                `form:"nome"`
	Email           string                `form:"email"`
	Telefone        string                `form:"telefone"`
	Nascimento      string                `form:"nascimento"`
	CPF             string                `form:"cpf"`
	CEP             string                `form:"cep"`
	Cidade          string                `form:"cidade"`
	Estado          string                `form:"estado"`
	Area            string                `form:"area"`
	Periodo         string                `form:"periodo"`
	Disponibilidade []string              `form:"disponibilidade"`
	Curriculo       *multipart.FileHeader `file:"curriculo"`
}

func (r SubmitRequest) values() map[string]field.Value {
	values := map[string]field.Value{
		FieldNome:            field.Text(r.Nome),
		FieldEmail:           field.Text(r.Email),
		FieldTelefone:        field.Text(r.Telefone),
		FieldNascimento:      field.Text(r.Nascimento),
		FieldCPF:             field.Text(r.CPF),
		FieldCEP:             field.Text(r.CEP),
		FieldCidade:          field.Text(r.Cidade),
		FieldEstado:          field.Text(r.Estado),
		FieldArea:            field.Text(r.Area),
		FieldPeriodo:         field.Text(r.Periodo),
		FieldDisponibilidade: field.Selected(r.Disponibilidade...),
	}
	if r.Curriculo != nil {
		values[FieldCurriculo] = field.Value{File: &field.Upload{
			Filename:    r.Curriculo.Filename,
			ContentType: file.DetectType(r.Curriculo),
			Size:        r.Curriculo.Size,
		}}
	}
	return values
}

// SubmitResult reports an accepted submission, or the field report and
// first invalid field of a rejected one.
type SubmitResult struct {
	ID           uuid.UUID    `json:"id,omitzero"`
	Message      string       `json:"message"`
	FirstInvalid string       `json:"first_invalid,omitempty"`
	Report       field.Report `json:"-"`
}

// Submit validates the whole form, stores the résumé and the record, and
// queues the confirmation e-mail. A form with invalid fields fails with
// ErrInvalidForm joined with the field errors.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	v := s.validatorFor(ctx)

	report := v.ValidateForm(s.fields, req.values())
	if !report.Valid() {
		s.metrics.IncrementSubmission("rejected")
		first, _ := report.FirstInvalid()
		return SubmitResult{
			Message:      v.Message(KeyFormInvalid),
			FirstInvalid: first.Field,
			Report:       report,
		}, errors.Join(ErrInvalidForm, report.Errors())
	}

	vol := s.volunteer(ctx, req)

	if req.Curriculo != nil && s.storage != nil {
		key := path.Join(s.cfg.UploadPrefix, vol.ID.String()+file.GetExtension(req.Curriculo))
		stored, err := s.storage.Save(ctx, req.Curriculo, key)
		if err != nil {
			s.metrics.IncrementSubmission("failed")
			return SubmitResult{}, errors.Join(ErrFailedToUpload, err)
		}
		vol.Curriculo = &Resume{
			Key:      stored.Key,
			Filename: stored.Filename,
			MIMEType: stored.MIMEType,
			Size:     stored.Size,
			URL:      s.storage.URL(stored.Key),
		}
	}

	id, err := s.sink.Save(ctx, vol)
	if err != nil {
		s.discardResume(ctx, vol.Curriculo)
		if errors.Is(err, ErrSubmissionExists) {
			s.metrics.IncrementSubmission("duplicate")
			s.log.InfoContext(ctx, "duplicate submission rejected",
				logger.Component("signup"),
				slog.String("cpf", sanitizer.MaskString(vol.CPF, 2)),
			)
			return SubmitResult{}, err
		}
		s.metrics.IncrementSubmission("failed")
		s.log.ErrorContext(ctx, "failed to store submission",
			logger.Component("signup"),
			logger.Error(err),
		)
		return SubmitResult{}, errors.Join(ErrFailedToStore, err)
	}
	vol.ID = id

	s.metrics.IncrementSubmission("accepted")
	s.log.InfoContext(ctx, "submission stored",
		logger.Component("signup"),
		logger.SubmissionID(id),
		slog.String("area", vol.Area),
		slog.Bool("resume", vol.Curriculo != nil),
	)

	s.sendConfirmation(ctx, vol, v)

	return SubmitResult{ID: id, Message: v.Message(KeySubmitted)}, nil
}

func (s *Service) volunteer(ctx context.Context, req SubmitRequest) Volunteer {
	birth, _ := time.Parse(time.DateOnly, req.Nascimento)
	return Volunteer{
		ID:              uuid.New(),
		Nome:            sanitizer.NormalizeName(req.Nome),
		Email:           sanitizer.NormalizeEmail(req.Email),
		Telefone:        mask.ExtractDigits(req.Telefone),
		Nascimento:      birth,
		CPF:             mask.ExtractDigits(req.CPF),
		CEP:             mask.ExtractDigits(req.CEP),
		Cidade:          sanitizer.NormalizeName(req.Cidade),
		Estado:          normalizeState(req.Estado),
		Area:            req.Area,
		Periodo:         req.Periodo,
		Disponibilidade: sanitizer.CleanStringSlice(req.Disponibilidade),
		Language:        i18n.GetLocale(ctx),
		CreatedAt:       s.now().UTC(),
	}
}

// normalizeState cleans the free-text state field, which has no letters rule.
var normalizeState = sanitizer.Compose(sanitizer.StripHTML, sanitizer.RemoveControlChars, sanitizer.NormalizeWhitespace)

// discardResume removes a résumé whose record could not be stored.
func (s *Service) discardResume(ctx context.Context, r *Resume) {
	if r == nil || s.storage == nil {
		return
	}
	if err := s.storage.Delete(context.WithoutCancel(ctx), r.Key); err != nil {
		s.log.ErrorContext(ctx, "failed to discard resume",
			logger.Component("signup"),
			logger.Error(err),
			slog.String("key", r.Key),
		)
	}
}

// sendConfirmation mails the volunteer in the background. The request
// context only contributes its values; the send has its own timeout.
func (s *Service) sendConfirmation(ctx context.Context, vol Volunteer, v *field.Validator) {
	if s.mailer == nil {
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.EmailTimeout)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		body, err := email.Render(sendCtx, s.views.ConfirmationEmail(ConfirmationEmailParams{
			Lang:      vol.Language,
			Nome:      vol.Nome,
			Greeting:  v.Message("signup.email_greeting", "name", vol.Nome),
			Body:      v.Message("signup.email_body"),
			Signature: v.Message("signup.email_signature"),
		}))
		if err == nil {
			err = s.mailer.SendEmail(sendCtx, email.Message{
				To:       vol.Email,
				Subject:  v.Message(KeyEmailSubject),
				BodyHTML: body,
				Tag:      "signup-confirmation",
			})
		}
		if err != nil {
			s.log.ErrorContext(sendCtx, "failed to send confirmation email",
				logger.Component("signup"),
				logger.SubmissionID(vol.ID),
				slog.String("to", sanitizer.MaskEmail(vol.Email)),
				logger.Error(err),
			)
		}
	}()
}

// Wait blocks until queued confirmation e-mails are done or ctx ends.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
