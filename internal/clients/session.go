package clients

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/SumeshSurendran12/QuasarFX-EURUSD-HTTP/internal/domain"
)

const sessionPath = "/session"

type loginRequest struct {
	UserName string `json:"UserName"`
	Password string `json:"Password"`
	AppKey   string `json:"AppKey"`
}

// sessionManager creates and tears down the upstream session. The session
// cookie itself lives in the transport's cookie jar.
type sessionManager struct {
	transport *Transport
	creds     domain.Credentials
	state     domain.SessionState
	logger    *zap.Logger
}

func newSessionManager(transport *Transport, creds domain.Credentials, logger *zap.Logger) *sessionManager {
	return &sessionManager{
		transport: transport,
		creds:     creds,
		state:     domain.SessionUnauthenticated,
		logger:    logger,
	}
}

// Login issues the session-creation call. Calling it while authenticated
// re-issues the upstream call.
func (s *sessionManager) Login(ctx context.Context) error {
	_, err := s.transport.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   sessionPath,
		Body: loginRequest{
			UserName: s.creds.Username,
			Password: s.creds.Password,
			AppKey:   s.creds.AppKey,
		},
		Expected: []int{http.StatusOK, http.StatusCreated},
	})
	if err != nil {
		return classifyLoginError(err)
	}

	s.state = domain.SessionAuthenticated
	s.logger.Info("upstream session established", zap.String("user", s.creds.Username))
	return nil
}

// Logout terminates the session. It is best-effort: failures are logged and dropped.
func (s *sessionManager) Logout(ctx context.Context) {
	_, err := s.transport.Do(ctx, Request{
		Method:   http.MethodDelete,
		Path:     sessionPath,
		Expected: []int{http.StatusOK, http.StatusNoContent},
	})
	if err != nil {
		s.logger.Debug("logout failed, ignoring", zap.Error(err))
	}
	s.state = domain.SessionUnauthenticated
}

func (s *sessionManager) State() domain.SessionState {
	return s.state
}

// classifyLoginError marks definite credential rejections (401/403 on the last
// attempt). Anything else stays a plain request failure.
func classifyLoginError(err error) error {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) &&
		(statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden) {
		return &domain.AuthenticationError{Err: err}
	}
	return err
}
