package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/lafise/go-fp-transfer/internal/common"
	"github.com/lafise/go-fp-transfer/internal/common/directory"
	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/models"
	"github.com/lafise/go-fp-transfer/internal/monitoring"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const logSession = "[SESSION]"

//go:generate mockgen -source=session.go -destination=mock/mock_session.go -package=mock
type SessionService interface {
	Load(ctx context.Context) error
	RefreshUser(ctx context.Context) error
	RefreshAccounts(ctx context.Context) error
	View() models.SessionView
}

// Session owns the state shared by every view of the dashboard: the user,
// their accounts with locally projected balances, and the local ledger.
// Read failures are kept as a display error and never abort the session.
type Session struct {
	client directory.Client
	userID int
	ledger *Ledger

	mu       sync.RWMutex
	user     *models.UserInfo
	accounts []models.Account
	err      string
}

var _ SessionService = (*Session)(nil)

func NewSession(client directory.Client, userID int) *Session {
	return &Session{
		client: client,
		userID: userID,
		ledger: NewLedger(),
	}
}

// Load fetches the user and then their accounts.
func (s *Session) Load(ctx context.Context) error {
	if err := s.RefreshUser(ctx); err != nil {
		return err
	}
	return s.RefreshAccounts(ctx)
}

func (s *Session) RefreshUser(ctx context.Context) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	s.setError("")

	user, err := s.client.GetUserInfo(ctx, s.userID)
	if err != nil {
		logger.Warn(ctx, logSession, logger.String("message", "error loading user"), logger.Err(err))
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	return nil
}

// RefreshAccounts loads every account product of the user concurrently.
// Accounts keep the order of the user's products; on any failure the cached accounts are kept.
func (s *Session) RefreshAccounts(ctx context.Context) (err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	s.mu.RLock()
	user := s.user
	s.mu.RUnlock()

	if user == nil {
		return common.ErrSessionNotLoaded
	}

	s.setError("")

	ids := make([]string, 0, len(user.Products))
	for _, product := range user.Products {
		if product.Type != "" && product.Type != models.ProductTypeAccount {
			continue
		}
		ids = append(ids, product.ID)
	}

	accounts := make([]models.Account, len(ids))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		eg.Go(func() error {
			acc, err := s.client.GetAccount(egCtx, id)
			if err != nil {
				return err
			}
			accounts[i] = acc
			return nil
		})
	}

	if err = eg.Wait(); err != nil {
		logger.Warn(ctx, logSession, logger.String("message", "error loading accounts"), logger.Err(err))
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	s.accounts = accounts
	s.mu.Unlock()

	return nil
}

func (s *Session) View() models.SessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var user *models.UserInfo
	if s.user != nil {
		u := *s.user
		user = &u
	}

	return models.SessionView{
		User:     user,
		Accounts: s.accountsLocked(),
		Error:    s.err,
	}
}

func (s *Session) User() *models.UserInfo {
	return s.View().User
}

func (s *Session) Accounts() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accountsLocked()
}

func (s *Session) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.err
}

func (s *Session) Ledger() *Ledger {
	return s.ledger
}

// AccountByNumber accepts the account number in its string form.
func (s *Session) AccountByNumber(accountNumber string) (models.Account, bool) {
	n, err := strconv.ParseInt(accountNumber, 10, 64)
	if err != nil {
		return models.Account{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.accounts {
		if acc.AccountNumber == n {
			return acc, true
		}
	}

	return models.Account{}, false
}

func (s *Session) OwnsAccount(accountNumber string) bool {
	_, ok := s.AccountByNumber(accountNumber)
	return ok
}

// adjustBalance adds delta to the cached balance. It reports false for unknown accounts.
func (s *Session) adjustBalance(accountNumber int64, delta decimal.Decimal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].AccountNumber == accountNumber {
			s.accounts[i].Balance = models.NewDecimalFromExternal(s.accounts[i].Balance.Add(delta))
			return true
		}
	}

	return false
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *Session) accountsLocked() []models.Account {
	out := make([]models.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}
