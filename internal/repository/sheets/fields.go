package sheets

import (
	"fmt"
	"strings"
)

// Row is one raw payload object. The backend spells the same logical
// field many ways depending on which export produced it, so every
// lookup goes through an explicit ordered alias list instead of
// guessing over arbitrary keys.
type Row map[string]any

// Ordered alias lists per logical field, highest priority first.
var (
	nameKeys   = []string{"NomeCompleto", "Nome", "nomeCompleto", "nome"}
	emailKeys  = []string{"EmailHC", "Email", "email"}
	serialKeys = []string{"SerialNumber", "Serial", "serial", "ID", "Id", "id"}

	dateKeys = []string{"DataISO", "dataISO", "dataIso", "dataiso", "DataIso", "data", "Data", "DATA", "Data (ISO)"}

	escalaFieldKeys = []string{"Escala", "escala"}
	modalidadeKeys  = []string{
		"Pratica/Teorica", "Prática/Teórica", "Pratica/Teórica", "Prática/Teorica",
		"Modalidade", "modalidade", "Tipo", "Turno", "Periodo",
	}
	entradaKeys = []string{"HoraEntrada", "Entrada", "horaEntrada"}
	saidaKeys   = []string{"HoraSaida", "Saida", "horaSaida"}

	absenceDateKeys = []string{
		"DataAusenciaISO", "DataDaAusencia", "Datadaausencia", "datadaausencia",
		"DATADAAUSENCIA", "DATA_DA_AUSENCIA", "DataAusencia", "dataAusencia",
		"dataDaAusencia", "dataausencia",
	}
	makeupDateKeys = []string{
		"DataReposicaoISO", "DataDaReposicao", "Datadareposicao", "datadareposicao",
		"DATADAREPOSICAO", "DATA_DA_REPOSICAO", "DataReposicao", "dataReposicao",
		"dataDaReposicao", "datareposicao",
	}
	reasonKeys   = []string{"Motivo", "motivo", "Reason"}
	locationKeys = []string{"Local", "local", "Location"}

	praticaNameKeys = []string{"nomePratica", "NomePratica", "pratica", "Pratica", "Prática", "Modulo", "NomeModulo"}

	courseKeys  = []string{"Curso", "curso"}
	statusKeys  = []string{"Status", "status", "Situacao", "Situação"}
	birthKeys   = []string{"DataNascimento", "dataNascimento", "Nascimento"}
	crefitoKeys = []string{"Crefito", "CREFITO", "crefito"}

	escalaNameKeys    = []string{"nomeEscala", "NomeEscala", "escala", "nome"}
	escalaDisplayKeys = []string{"nomeExibicao", "nomeAbaOriginal", "NomeExibicao"}
	periodKeys        = []string{"periodo", "Periodo", "período", "periodLabel"}
	sheetURLKeys      = []string{"planilhaUrl", "planilhaURL", "planilhaLink", "sheetUrl"}
	pdfURLKeys        = []string{"pdfUrl", "pdfURL", "pdfLink", "escalaPdf"}

	// Envelope fields (first non-empty wins).
	selectedDateKeys   = []string{"dataSelecionada", "selectedDate", "data"}
	selectedEscalaKeys = []string{"escalaSelecionada", "selectedScale", "escala"}
	datesKeys          = []string{"datasDisponiveis", "availableDates", "dates"}
	escalasByDateKeys  = []string{"escalasPorData", "escalasDisponiveis", "scalesByDate"}
	lastUpdatedKeys    = []string{"ultimaAtualizacao", "lastUpdated", "atualizadoEm", "timestampSync"}

	// Container keys that may hold the record list of a day payload.
	recordContainerKeys = []string{"registros", "records", "rows", "data", "hoje", "ponto"}

	// Grouped-by-escala container.
	groupedRecordsKey = "registrosPorEscala"
)

// pickFirst returns the first non-empty value among the row's aliases
// for a logical field.
func pickFirst(row Row, keys []string) any {
	for _, key := range keys {
		value, ok := row[key]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return value
	}
	return nil
}

// pickString is pickFirst coerced to a trimmed string.
func pickString(row Row, keys []string) string {
	return stringify(pickFirst(row, keys))
}

// stringify renders a payload scalar as text. Spreadsheet exports turn
// badge serials into JSON numbers; integral floats must not grow a
// ".000000" suffix.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
