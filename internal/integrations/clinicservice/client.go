package clinicservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с каталогом клиник и специализаций
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ClinicService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetClinic получает клинику по ID
func (c *Client) GetClinic(ctx context.Context, clinicID int64) (*Clinic, error) {
	url := fmt.Sprintf("%s/internal/clinics/%d", c.baseURL, clinicID)

	var clinic Clinic
	if err := c.getJSON(ctx, url, &clinic, ErrClinicNotFound); err != nil {
		return nil, err
	}

	return &clinic, nil
}

// GetSpecialization получает специализацию клиники по ID
func (c *Client) GetSpecialization(ctx context.Context, clinicID, specializationID int64) (*Specialization, error) {
	url := fmt.Sprintf("%s/internal/clinics/%d/specializations/%d", c.baseURL, clinicID, specializationID)

	var spec Specialization
	if err := c.getJSON(ctx, url, &spec, ErrSpecializationNotFound); err != nil {
		return nil, err
	}

	return &spec, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается при статусе 404
func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
