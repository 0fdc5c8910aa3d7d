package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/hcfisio/ponto-backend-go/internal/domain/ponto"
)

// Client is the remote spreadsheet-synced data source, consumed as an
// opaque JSON endpoint with an action parameter.
type Client interface {
	// FetchAll pulls the bulk payload: students, schedules and the
	// absence/makeup ledger.
	FetchAll(ctx context.Context) (Snapshot, error)

	// FetchToday pulls the live attendance snapshot for the current date.
	FetchToday(ctx context.Context) (DayPayload, error)

	// FetchDay pulls attendance for one date and optional escala.
	FetchDay(ctx context.Context, date, escala string) (DayPayload, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewClient builds the HTTP implementation of the data source client.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchAll implements Client.
func (c *httpClient) FetchAll(ctx context.Context) (Snapshot, error) {
	payload, err := c.get(ctx, url.Values{"action": {"getAll"}})
	if err != nil {
		return Snapshot{}, err
	}
	snapshot := transformBulk(payload)
	snapshot.ID = uuid.NewString()
	return snapshot, nil
}

// FetchToday implements Client.
func (c *httpClient) FetchToday(ctx context.Context) (DayPayload, error) {
	payload, err := c.get(ctx, url.Values{"action": {"getPontoHoje_"}})
	if err != nil {
		return DayPayload{}, err
	}
	today := time.Now().Format("2006-01-02")
	return extractDayPayload(payload, today), nil
}

// FetchDay implements Client.
func (c *httpClient) FetchDay(ctx context.Context, date, escala string) (DayPayload, error) {
	query := url.Values{"action": {"getPontoPorEscala_"}, "data": {date}}
	if escala != "" && escala != ponto.EscalaKeyAll {
		query.Set("escala", escala)
	}
	payload, err := c.get(ctx, query)
	if err != nil {
		return DayPayload{}, err
	}
	return extractDayPayload(payload, date), nil
}

func (c *httpClient) get(ctx context.Context, query url.Values) (Row, error) {
	endpoint := c.baseURL + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build data source request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ponto.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: data source returned status %d", ponto.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ponto.ErrFetchFailed, err)
	}

	var payload Row
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response body: %v", ponto.ErrFetchFailed, err)
	}

	// A success:false flag is tolerated as long as the payload still
	// carries usable data; the backend sets it on partial exports.
	if success, ok := payload["success"].(bool); ok && !success {
		if !hasUsableData(payload) {
			return nil, fmt.Errorf("%w: data source reported failure (%s)", ponto.ErrFetchFailed, stringify(payload["message"]))
		}
		slog.Warn("Data source reported failure but payload is usable, continuing",
			"action", query.Get("action"), "message", stringify(payload["message"]))
	}
	return payload, nil
}

func hasUsableData(payload Row) bool {
	if _, ok := payload["bySheet"].(map[string]any); ok {
		return true
	}
	if grouped, ok := payload[groupedRecordsKey].(map[string]any); ok && len(grouped) > 0 {
		return true
	}
	for _, key := range recordContainerKeys {
		if len(coerceRows(payload[key])) > 0 {
			return true
		}
	}
	return len(coerceRows(payload["alunos"])) > 0 || len(coerceRows(payload["escalas"])) > 0
}
