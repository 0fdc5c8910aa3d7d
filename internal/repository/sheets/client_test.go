package sheets

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcfisio/ponto-backend-go/internal/domain/ponto"
)

const testBaseURL = "https://script.google.com/macros/s/test/exec"

func newMockedClient(t *testing.T) *httpClient {
	client := &httpClient{
		baseURL: testBaseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
	httpmock.ActivateNonDefault(client.client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func TestClient_FetchDay_Success(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBaseURL,
		httpmock.NewStringResponder(200, `{
			"success": true,
			"dataSelecionada": "2026-01-05",
			"registros": [
				{"Nome": "Ana Souza", "HoraEntrada": "07:00", "Escala": "Escala1"}
			]
		}`))

	day, err := client.FetchDay(context.Background(), "2026-01-05", "Escala1")

	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", day.SelectedDate)
	require.Len(t, day.Records, 1)
	assert.Equal(t, "escala1", day.Records[0].EscalaKey)
}

func TestClient_FetchDay_AllGroupOmitsEscalaParam(t *testing.T) {
	client := newMockedClient(t)
	var gotQuery string
	httpmock.RegisterResponder("GET", testBaseURL,
		func(req *http.Request) (*http.Response, error) {
			gotQuery = req.URL.RawQuery
			return httpmock.NewStringResponse(200, `{"registros": []}`), nil
		})

	_, err := client.FetchDay(context.Background(), "2026-01-05", "all")

	require.NoError(t, err)
	assert.NotContains(t, gotQuery, "escala=")
	assert.Contains(t, gotQuery, "data=2026-01-05")
}

func TestClient_FetchDay_HTTPErrorWrapsFetchFailed(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBaseURL,
		httpmock.NewStringResponder(502, "bad gateway"))

	_, err := client.FetchDay(context.Background(), "2026-01-05", "")

	assert.ErrorIs(t, err, ponto.ErrFetchFailed)
}

func TestClient_FetchDay_MalformedBody(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBaseURL,
		httpmock.NewStringResponder(200, "<html>not json</html>"))

	_, err := client.FetchDay(context.Background(), "2026-01-05", "")

	assert.ErrorIs(t, err, ponto.ErrFetchFailed)
}

func TestClient_Get_SuccessFalseWithoutDataFails(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBaseURL,
		httpmock.NewStringResponder(200, `{"success": false, "message": "planilha indisponível"}`))

	_, err := client.FetchDay(context.Background(), "2026-01-05", "")

	assert.ErrorIs(t, err, ponto.ErrFetchFailed)
}

func TestClient_Get_SuccessFalseWithUsableDataProceeds(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBaseURL,
		httpmock.NewStringResponder(200, `{
			"success": false,
			"message": "export parcial",
			"registros": [{"Nome": "Ana Souza"}]
		}`))

	day, err := client.FetchDay(context.Background(), "2026-01-05", "")

	require.NoError(t, err)
	require.Len(t, day.Records, 1)
}

func TestClient_FetchAll_BySheetSnapshot(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBaseURL,
		httpmock.NewStringResponder(200, `{
			"success": true,
			"bySheet": {
				"Alunos": [{"NomeCompleto": "Ana Souza", "EmailHC": "ana@hcfisio.com.br"}],
				"Escala 1": [{"NomeCompleto": "Ana Souza", "5_01": "07h-13h"}]
			}
		}`))

	snapshot, err := client.FetchAll(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, snapshot.ID)
	require.Len(t, snapshot.Alunos, 1)
	require.Len(t, snapshot.Escalas, 1)
	assert.Equal(t, "Escala1", snapshot.Escalas[0].Name)
}

func TestClient_FetchToday_UsesTodayAsFallback(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder("GET", testBaseURL,
		httpmock.NewStringResponder(200, `{
			"registros": [{"Nome": "Ana Souza", "HoraEntrada": "07:00"}]
		}`))

	day, err := client.FetchToday(context.Background())

	require.NoError(t, err)
	require.Len(t, day.Records, 1)
	assert.Equal(t, time.Now().Format("2006-01-02"), day.Records[0].ISODate)
}
