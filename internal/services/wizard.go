package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common"
	"github.com/lafise/go-fp-transfer/internal/common/directory"
	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/common/metrics"
	"github.com/lafise/go-fp-transfer/internal/common/validation"
	"github.com/lafise/go-fp-transfer/internal/config"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/monitoring"
)

const (
	logWizard = "[WIZARD]"

	MsgInvalidConfirmationEmail = "confirmation email must be a valid email address"

	DefaultTransferType = models.TransferTypeThirdParty
)

//go:generate mockgen -source=wizard.go -destination=mock/mock_wizard.go -package=mock
type WizardService interface {
	Snapshot() models.WizardView
	Update(ctx context.Context, req models.DoUpdateTransferRequest) (models.WizardView, error)
	Back() models.WizardView
	Submit(ctx context.Context) (models.TransferReceipt, error)
}

// Wizard is the transfer form of one session. The step is derived from the draft on
// every change of origin, destination, transfer type or amount; Back is the only
// operation that moves it by hand.
type Wizard struct {
	session    *Session
	verifier   *Verifier
	submitter  *transferSubmitter
	metrics    metrics.Metrics
	resetDelay time.Duration

	mu               sync.Mutex
	step             models.WizardStep
	draft            models.TransferDraft
	verification     models.VerificationStatus
	verificationErr  string
	verificationGen  uint64
	verifyDone       chan struct{}
	manualCurrency   models.Currency
	currencyPinned   bool
	balanceWarning   string
	validationErrors []string
	busy             bool
	receipt          *models.TransferReceipt
	resetTimer       *time.Timer
	resetGen         uint64
}

var _ WizardService = (*Wizard)(nil)

func NewWizard(session *Session, verifier *Verifier, client directory.Client, conf config.TransferConfig, m metrics.Metrics) *Wizard {
	resetDelay := conf.ResetDelay
	if resetDelay <= 0 {
		resetDelay = config.DefaultResetDelay
	}

	w := &Wizard{
		session:  session,
		verifier: verifier,
		submitter: &transferSubmitter{
			client:    client,
			session:   session,
			projector: NewProjector(session, m),
			now:       time.Now,
		},
		metrics:    m,
		resetDelay: resetDelay,
	}
	w.resetLocked()

	return w
}

// DeriveStep is the furthest step the draft allows.
func DeriveStep(d models.TransferDraft) models.WizardStep {
	originValid := d.OriginAccount != nil
	destinationValid := originValid &&
		d.DestinationAccount != nil &&
		d.DestinationAccount.AccountNumber != d.OriginAccount.AccountNumber

	amountValid := false
	if destinationValid {
		amount, ok := ParseAmount(d.Amount)
		amountValid = ok && HasSufficientBalance(amount, d.OriginAccount.Balance.Decimal)
	}

	switch {
	case amountValid:
		return models.StepEnterMetadata
	case destinationValid:
		return models.StepEnterAmount
	case originValid:
		return models.StepSelectDestination
	default:
		return models.StepSelectOrigin
	}
}

func (w *Wizard) SetTransactionType(t models.TransferType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %s", common.ErrInvalidTransactionType, t)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.receipt != nil {
		return common.ErrWizardResetting
	}

	if w.draft.TransactionType == t {
		return nil
	}

	w.draft.TransactionType = t
	w.clearDestinationLocked()
	w.recomputeLocked()

	return nil
}

func (w *Wizard) SelectOrigin(ctx context.Context, accountNumber string) error {
	acc, ok := w.session.AccountByNumber(accountNumber)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrAccountNotExists, accountNumber)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.receipt != nil {
		return common.ErrWizardResetting
	}

	w.draft.OriginAccount = &acc

	// an origin change can make the typed destination equal to it, or stop being equal
	if w.draft.TransactionType == models.TransferTypeThirdParty && w.draft.DestinationAccountNumber != "" &&
		(w.draft.DestinationAccountNumber == acc.Key() || w.verificationErr == MsgAccountEqualsOrigin) {
		w.verifyLocked(ctx, w.draft.DestinationAccountNumber)
	}

	w.recomputeLocked()

	return nil
}

// SelectDestination picks one of the user's own accounts.
func (w *Wizard) SelectDestination(accountNumber string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.receipt != nil {
		return common.ErrWizardResetting
	}

	if w.draft.TransactionType != models.TransferTypeOwn {
		return fmt.Errorf("%w: own destination requires %s", common.ErrInvalidTransactionType, models.TransferTypeOwn)
	}

	acc, ok := w.session.AccountByNumber(accountNumber)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrDestinationNotOwned, accountNumber)
	}

	w.draft.DestinationAccount = &acc
	w.recomputeLocked()

	return nil
}

// SetDestinationNumber takes the typed third-party account number and starts its verification.
func (w *Wizard) SetDestinationNumber(ctx context.Context, input string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.receipt != nil {
		return common.ErrWizardResetting
	}

	if w.draft.TransactionType != models.TransferTypeThirdParty {
		return fmt.Errorf("%w: typed destination requires %s", common.ErrInvalidTransactionType, models.TransferTypeThirdParty)
	}

	w.verifyLocked(ctx, input)
	w.recomputeLocked()

	return nil
}

func (w *Wizard) SetAmount(amount string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.receipt != nil {
		return common.ErrWizardResetting
	}

	w.draft.Amount = strings.TrimSpace(amount)
	w.recomputeLocked()

	return nil
}

// SetManualCurrency selects the currency of an unresolved third-party destination for the preview.
func (w *Wizard) SetManualCurrency(currency string) error {
	cur := models.NormalizeCurrency(currency)
	if !cur.Supported() {
		return fmt.Errorf("%w: %s", common.ErrUnsupportedCurrencyPair, currency)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.receipt != nil {
		return common.ErrWizardResetting
	}

	if w.currencyPinned && cur != w.manualCurrency {
		return common.ErrCurrencyPinned
	}

	w.manualCurrency = cur

	return nil
}

func (w *Wizard) SetConcept(concept string) error {
	return w.setMetadata(func(d *models.TransferDraft) { d.Concept = concept })
}

func (w *Wizard) SetReference(reference string) error {
	return w.setMetadata(func(d *models.TransferDraft) { d.Reference = reference })
}

func (w *Wizard) SetConfirmationEmail(email string) error {
	return w.setMetadata(func(d *models.TransferDraft) { d.ConfirmationEmail = strings.TrimSpace(email) })
}

// Update applies the non-nil fields of req in form order and stops at the first rejected one.
func (w *Wizard) Update(ctx context.Context, req models.DoUpdateTransferRequest) (models.WizardView, error) {
	steps := []struct {
		value *string
		apply func(string) error
	}{
		{req.TransactionType, func(v string) error { return w.SetTransactionType(models.TransferType(v)) }},
		{req.OriginAccount, func(v string) error { return w.SelectOrigin(ctx, v) }},
		{req.DestinationAccount, w.SelectDestination},
		{req.DestinationAccountNumber, func(v string) error { return w.SetDestinationNumber(ctx, v) }},
		{req.Amount, w.SetAmount},
		{req.ManualCurrency, w.SetManualCurrency},
		{req.Concept, w.SetConcept},
		{req.Reference, w.SetReference},
		{req.ConfirmationEmail, w.SetConfirmationEmail},
	}

	for _, s := range steps {
		if s.value == nil {
			continue
		}
		if err := s.apply(*s.value); err != nil {
			return w.Snapshot(), err
		}
	}

	return w.Snapshot(), nil
}

// Back moves one step back without touching the draft. It never goes below the first step.
func (w *Wizard) Back() models.WizardView {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.receipt == nil && w.step > models.StepSelectOrigin {
		w.step--
	}

	return w.snapshotLocked()
}

// Submit sends the transfer. A second call while the first is in flight is rejected.
// On failure the error message becomes the only validation error and nothing local changes.
func (w *Wizard) Submit(ctx context.Context) (receipt models.TransferReceipt, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	w.mu.Lock()

	switch {
	case w.busy:
		w.mu.Unlock()
		return receipt, common.ErrSubmitInProgress
	case w.receipt != nil:
		w.mu.Unlock()
		return receipt, common.ErrWizardResetting
	}

	transferType := string(w.draft.TransactionType)
	errs := w.validateLocked()

	if w.step != models.StepEnterMetadata || w.balanceWarning != "" {
		w.validationErrors = errs
		w.mu.Unlock()
		w.recordSubmission(transferType, metrics.StatusInvalid)
		return receipt, common.ErrSubmitNotAllowed
	}

	if len(errs) > 0 {
		w.validationErrors = errs
		w.mu.Unlock()
		w.recordSubmission(transferType, metrics.StatusInvalid)
		return receipt, fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(errs, "; "))
	}

	amount, _ := ParseAmount(w.draft.Amount)
	order := transferOrder{
		Type:              w.draft.TransactionType,
		Origin:            *w.draft.OriginAccount,
		Destination:       w.destinationLocked(),
		Amount:            amount,
		Concept:           w.draft.Concept,
		Reference:         w.draft.Reference,
		ConfirmationEmail: w.draft.ConfirmationEmail,
	}
	w.busy = true
	w.validationErrors = nil
	w.mu.Unlock()

	receipt, err = w.submitter.submit(ctx, order)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.busy = false

	if err != nil {
		logger.Warn(ctx, logWizard, logger.String("message", "transfer rejected"), logger.Err(err))
		w.validationErrors = []string{err.Error()}
		w.recordSubmission(transferType, metrics.StatusFailed)
		return receipt, err
	}

	logger.Info(ctx, logWizard,
		logger.String("message", "transfer confirmed"),
		logger.String("transactionNumber", receipt.TransactionNumber))

	w.recordSubmission(transferType, metrics.StatusSuccess)
	w.receipt = &receipt
	w.scheduleResetLocked()

	return receipt, nil
}

// AwaitVerification blocks until the pending destination lookup settles and returns its status.
func (w *Wizard) AwaitVerification(ctx context.Context) (models.VerificationStatus, error) {
	w.mu.Lock()
	done := w.verifyDone
	w.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return models.VerificationPending, ctx.Err()
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return w.verification, nil
}

func (w *Wizard) Snapshot() models.WizardView {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.snapshotLocked()
}

// Reset drops the draft and any success state.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.resetLocked()
}

// Close stops the timers owned by the wizard.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopResetTimerLocked()
	w.verifier.Cancel()
	w.settleVerificationLocked()
}

func (w *Wizard) setMetadata(set func(*models.TransferDraft)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.receipt != nil {
		return common.ErrWizardResetting
	}

	set(&w.draft)
	w.validationErrors = nil

	return nil
}

func (w *Wizard) verifyLocked(ctx context.Context, input string) {
	w.draft.DestinationAccount = nil
	w.currencyPinned = false
	w.settleVerificationLocked()

	origin := ""
	if w.draft.OriginAccount != nil {
		origin = w.draft.OriginAccount.Key()
	}

	res := w.verifier.Verify(ctx, input, origin, w.onVerification)

	w.draft.DestinationAccountNumber = res.Input
	w.verificationGen = res.Generation
	w.verification = res.Status
	w.verificationErr = res.Error
	if res.Status == models.VerificationPending {
		w.verifyDone = make(chan struct{})
	}
}

func (w *Wizard) onVerification(res VerificationResult) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if res.Generation != w.verificationGen || w.draft.TransactionType != models.TransferTypeThirdParty {
		return
	}

	w.verification = res.Status
	w.verificationErr = res.Error

	if res.Account != nil {
		w.draft.DestinationAccount = res.Account
		if cur := res.Account.NormalizedCurrency(); cur.Supported() {
			w.manualCurrency = cur
			w.currencyPinned = true
		}
	}

	w.settleVerificationLocked()
	w.recomputeLocked()
}

func (w *Wizard) clearDestinationLocked() {
	w.verifier.Cancel()
	w.settleVerificationLocked()

	w.draft.DestinationAccount = nil
	w.draft.DestinationAccountNumber = ""
	w.verification = models.VerificationIdle
	w.verificationErr = ""
	w.verificationGen = 0
	w.currencyPinned = false
}

func (w *Wizard) settleVerificationLocked() {
	if w.verifyDone != nil {
		close(w.verifyDone)
		w.verifyDone = nil
	}
}

func (w *Wizard) recomputeLocked() {
	w.step = DeriveStep(w.draft)
	w.validationErrors = nil
	w.balanceWarning = ""

	if w.draft.OriginAccount == nil {
		return
	}

	amount, ok := ParseAmount(w.draft.Amount)
	if ok && !HasSufficientBalance(amount, w.draft.OriginAccount.Balance.Decimal) {
		w.balanceWarning = InsufficientBalanceMessage(w.draft.OriginAccount.NormalizedCurrency(), w.draft.OriginAccount.Balance.Decimal)
	}
}

func (w *Wizard) validateLocked() []string {
	res := ValidateTransfer(TransferValidationInput{
		Origin:      w.draft.OriginAccount,
		Destination: w.destinationLocked(),
		Amount:      w.draft.Amount,
	})

	errs := res.Errors
	if err := validation.ValidateVar(w.draft.ConfirmationEmail, "omitempty,email"); err != nil {
		errs = append(errs, MsgInvalidConfirmationEmail)
	}

	return errs
}

func (w *Wizard) destinationLocked() string {
	if w.draft.DestinationAccount == nil {
		return ""
	}
	return w.draft.DestinationAccount.Key()
}

func (w *Wizard) previewLocked() *models.ConversionPreview {
	if w.draft.OriginAccount == nil {
		return nil
	}

	amount, ok := ParseAmount(w.draft.Amount)
	if !ok {
		return nil
	}

	var to models.Currency
	switch {
	case w.draft.DestinationAccount != nil:
		to = w.draft.DestinationAccount.NormalizedCurrency()
	case w.draft.TransactionType == models.TransferTypeThirdParty && w.manualCurrency != "":
		to = w.manualCurrency
	default:
		return nil
	}

	return NewConversionPreview(amount, w.draft.OriginAccount.NormalizedCurrency(), to)
}

func (w *Wizard) canSubmitLocked() bool {
	return w.step == models.StepEnterMetadata &&
		w.balanceWarning == "" &&
		!w.busy &&
		w.receipt == nil
}

func (w *Wizard) snapshotLocked() models.WizardView {
	draft := w.draft
	if draft.OriginAccount != nil {
		acc := *draft.OriginAccount
		draft.OriginAccount = &acc
	}
	if draft.DestinationAccount != nil {
		acc := *draft.DestinationAccount
		draft.DestinationAccount = &acc
	}

	var receipt *models.TransferReceipt
	if w.receipt != nil {
		r := *w.receipt
		receipt = &r
	}

	errs := make([]string, len(w.validationErrors))
	copy(errs, w.validationErrors)

	return models.WizardView{
		Step:                w.step,
		StepName:            w.step.Name(),
		Draft:               draft,
		Verification:        w.verification,
		VerificationError:   w.verificationErr,
		ManualCurrency:      w.manualCurrency,
		ManualCurrencyFixed: w.currencyPinned,
		BalanceWarning:      w.balanceWarning,
		ValidationErrors:    errs,
		Preview:             w.previewLocked(),
		Busy:                w.busy,
		CanSubmit:           w.canSubmitLocked(),
		Success:             w.receipt != nil,
		Receipt:             receipt,
	}
}

func (w *Wizard) scheduleResetLocked() {
	w.stopResetTimerLocked()

	w.resetGen++
	gen := w.resetGen
	w.resetTimer = time.AfterFunc(w.resetDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		if w.resetGen != gen {
			return
		}
		w.resetLocked()
	})
}

func (w *Wizard) stopResetTimerLocked() {
	if w.resetTimer != nil {
		w.resetTimer.Stop()
		w.resetTimer = nil
	}
	w.resetGen++
}

func (w *Wizard) resetLocked() {
	w.stopResetTimerLocked()
	w.verifier.Cancel()
	w.settleVerificationLocked()

	w.draft = models.TransferDraft{TransactionType: DefaultTransferType}
	w.step = models.StepSelectOrigin
	w.verification = models.VerificationIdle
	w.verificationErr = ""
	w.verificationGen = 0
	w.manualCurrency = ""
	w.currencyPinned = false
	w.balanceWarning = ""
	w.validationErrors = nil
	w.receipt = nil
}

func (w *Wizard) recordSubmission(transferType, status string) {
	if w.metrics != nil {
		w.metrics.GetTransferPrometheus().RecordSubmission(transferType, status)
	}
}
