package session

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/app/simulate"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/YelzhanWeb/tableorder/internal/interfaces"
)

const (
	msgTableValid   = "桌号验证成功"
	msgTableInvalid = "无效的桌号格式"
)

// Service holds the two pieces of device state: the table the customer
// scanned and whether staff are signed in.
type Service struct {
	repo          interfaces.SessionRepository
	logger        logger.Logger
	staffPassword string
	validateDelay time.Duration
}

func NewService(repo interfaces.SessionRepository, logger logger.Logger, staffPassword string, validateDelay time.Duration) *Service {
	return &Service{
		repo:          repo,
		logger:        logger,
		staffPassword: staffPassword,
		validateDelay: validateDelay,
	}
}

// ValidateTable checks the format of a scanned table code. A cancelled
// context reports the code as invalid.
func (s *Service) ValidateTable(ctx context.Context, code string) interfaces.TableCheck {
	if err := simulate.Delay(ctx, s.validateDelay); err != nil {
		return interfaces.TableCheck{Valid: false, Message: err.Error()}
	}

	if domain.ValidTableNumber(code) {
		return interfaces.TableCheck{Valid: true, Message: msgTableValid}
	}
	return interfaces.TableCheck{Valid: false, Message: msgTableInvalid}
}

// SetTable stores code as the active table after validating it.
func (s *Service) SetTable(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)

	check := s.ValidateTable(ctx, code)
	if err := ctx.Err(); err != nil {
		return err
	}
	if !check.Valid {
		return domain.ValidationError{Field: "tableNumber", Message: check.Message}
	}

	if err := s.repo.SetTableNumber(ctx, code); err != nil {
		s.logger.Error("session_save_failed", "Failed to store table number", "", nil, err)
		return err
	}

	s.logger.Debug("table_selected", fmt.Sprintf("Table %s selected", code), "", nil)
	return nil
}

// Table returns the active table, or "" when none has been scanned.
func (s *Service) Table(ctx context.Context) (string, error) {
	return s.repo.TableNumber(ctx)
}

func (s *Service) Login(ctx context.Context, password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.staffPassword)) != 1 {
		s.logger.Info("staff_login_failed", "Staff login rejected", "", nil)
		return fmt.Errorf("wrong password: %w", domain.ErrUnauthorized)
	}

	if err := s.repo.SetStaffLoggedIn(ctx, true); err != nil {
		return err
	}

	s.logger.Info("staff_logged_in", "Staff logged in", "", nil)
	return nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.repo.SetStaffLoggedIn(ctx, false); err != nil {
		return err
	}

	s.logger.Info("staff_logged_out", "Staff logged out", "", nil)
	return nil
}

func (s *Service) LoggedIn(ctx context.Context) (bool, error) {
	return s.repo.StaffLoggedIn(ctx)
}
