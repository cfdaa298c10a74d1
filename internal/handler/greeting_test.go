package handler_test

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/welcome-service/internal/handler"
	"github.com/iliyamo/welcome-service/internal/repository"
)

const activeQuery = "SELECT body FROM messages WHERE is_active = 1 ORDER BY id DESC LIMIT 1"

func newGreetingTest(t *testing.T) (*handler.GreetingHandler, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Error mocking DB")

	h := handler.NewGreetingHandler(repository.NewMessageRepo(db))
	return h, mock, func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "Expectations were not met")
		db.Close()
	}
}

func TestRoot(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		mockSetup    func(sqlmock.Sqlmock)
		expectedCode int
		expectedBody string
	}{
		{
			name: "Returns active welcome message",
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(activeQuery)).
					WillReturnRows(m.NewRows([]string{"body"}).AddRow(repository.DefaultWelcome))
			},
			expectedCode: http.StatusOK,
			expectedBody: repository.DefaultWelcome,
		},
		{
			name: "No active message yields 404",
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(activeQuery)).WillReturnError(sql.ErrNoRows)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Database failure yields 503, not a crash",
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(activeQuery)).
					WillReturnError(errors.New("connection refused"))
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, mock, cleanup := newGreetingTest(t)
			defer cleanup()
			tc.mockSetup(mock)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, h.Root(c))
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedBody != "" {
				assert.Equal(t, tc.expectedBody, rec.Body.String())
			}
			if tc.expectedCode != http.StatusOK {
				assert.Contains(t, rec.Body.String(), "error")
			}
		})
	}
}
