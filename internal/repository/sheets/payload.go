package sheets

import (
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hcfisio/ponto-backend-go/internal/domain/aluno"
	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/domain/ponto"
	"github.com/hcfisio/ponto-backend-go/internal/pkg/normalize"
)

// Snapshot is everything the getAll action supplies: the student
// roster, the published duty schedules and the absence/makeup ledger.
type Snapshot struct {
	ID            string
	Alunos        []aluno.Aluno
	Escalas       []escala.Escala
	Ausencias     []escala.AbsenceMakeup
	Ponto         []ponto.Record
	NotasTeoricas []aluno.TheoryGrades
	NotasPraticas []aluno.PracticeGrade
	LastUpdated   string
}

// DayPayload is one attendance fetch: the normalized records plus the
// envelope fields the backend attaches to day responses.
type DayPayload struct {
	Records        []ponto.Record
	SelectedDate   string
	SelectedEscala string
	Dates          []string
	EscalasByDate  map[string][]string
	LastUpdated    string
}

// normalizeRecord builds an attendance record from one raw payload
// row. Returns false when the row has no date (after the fallback) or
// no identity field at all; such rows are dropped, not errors.
func normalizeRecord(row Row, fallbackDate string) (ponto.Record, bool) {
	isoDate := ""
	for _, key := range dateKeys {
		if value, ok := row[key]; ok {
			if iso := normalize.NormalizeDate(value); iso != "" {
				isoDate = iso
				break
			}
		}
	}
	if isoDate == "" {
		isoDate = normalize.NormalizeDate(fallbackDate)
	}
	if isoDate == "" {
		return ponto.Record{}, false
	}

	name := pickString(row, nameKeys)
	email := pickString(row, emailKeys)
	serial := pickString(row, serialKeys)
	identity, ok := normalize.NewIdentity(name, email, serial)
	if !ok {
		return ponto.Record{}, false
	}

	escalaName := pickString(row, escalaFieldKeys)
	entradaRaw := pickString(row, entradaKeys)
	saidaRaw := pickString(row, saidaKeys)

	entrada := normalize.NormalizeTime(entradaRaw)
	entradaMinutes := ponto.NoEntry
	if minutes, ok := normalize.TimeToMinutes(entradaRaw); ok {
		entradaMinutes = minutes
	}

	return ponto.Record{
		ID:             identity.Canonical,
		Name:           name,
		NameKey:        normalize.Fold(name),
		RawSerial:      serial,
		SerialKey:      normalize.Fold(serial),
		Email:          email,
		EmailKey:       normalize.Fold(email),
		ISODate:        isoDate,
		Escala:         escalaName,
		EscalaKey:      escalaKeyOf(escalaName),
		Modalidade:     pickString(row, modalidadeKeys),
		Entrada:        entrada,
		Saida:          normalize.NormalizeTime(saidaRaw),
		EntradaMinutes: entradaMinutes,
	}, true
}

// escalaKeyOf folds a duty-group label into its cache key. Rows with
// no group land in a shared "sem-escala" bucket so they still group
// for baseline computation.
func escalaKeyOf(name string) string {
	if strings.TrimSpace(name) == "" {
		return "sem-escala"
	}
	return normalize.Fold(name)
}

// coerceRows flattens the shapes a sheet export may take: a plain
// list, a {dados: [...]} wrapper, or a map keyed by row id.
func coerceRows(sheet any) []Row {
	switch v := sheet.(type) {
	case []any:
		return rowsFromList(v)
	case map[string]any:
		if inner, ok := v["dados"]; ok {
			return coerceRows(inner)
		}
		if inner, ok := v["registros"]; ok {
			return coerceRows(inner)
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var rows []Row
		for _, key := range keys {
			if row, ok := v[key].(map[string]any); ok {
				rows = append(rows, Row(row))
			}
		}
		return rows
	default:
		return nil
	}
}

func rowsFromList(list []any) []Row {
	var rows []Row
	for _, item := range list {
		if row, ok := item.(map[string]any); ok {
			rows = append(rows, Row(row))
		}
	}
	return rows
}

// normalizeSheetName folds a sheet title for matching ("Notas Teóricas"
// == "notasteoricas").
func normalizeSheetName(name string) string {
	return strings.ReplaceAll(normalize.Fold(name), " ", "")
}

var (
	dayColumnRegex   = regexp.MustCompile(`^(\d{1,2})_(\d{2})$`)
	escalaSheetRegex = regexp.MustCompile(`(?i)^escala\s*(\d+)$`)
	digitsRegex      = regexp.MustCompile(`(\d+)`)
)

// aggregateEscalaSheet turns one EscalaN sheet into a schedule
// definition. Day columns arrive named D_MM; each row is one person
// with free-text day cells.
func aggregateEscalaSheet(sheetName string, rows []Row) (escala.Escala, bool) {
	if len(rows) == 0 {
		return escala.Escala{}, false
	}

	// Day headers come from the first row's column names, normalized
	// to DD/MM and kept unique in column order.
	columnToHeader := map[string]string{}
	var headers []string
	seen := map[string]bool{}
	firstRowKeys := make([]string, 0, len(rows[0]))
	for key := range rows[0] {
		firstRowKeys = append(firstRowKeys, key)
	}
	sort.Strings(firstRowKeys)
	for _, key := range firstRowKeys {
		match := dayColumnRegex.FindStringSubmatch(key)
		if match == nil {
			continue
		}
		header := normalize.NormalizeDayMonth(match[1] + "/" + match[2])
		columnToHeader[key] = header
		if !seen[header] {
			seen[header] = true
			headers = append(headers, header)
		}
	}
	if len(headers) == 0 {
		return escala.Escala{}, false
	}

	name := sheetName
	if match := digitsRegex.FindStringSubmatch(sheetName); match != nil {
		name = "Escala" + match[1]
	}

	def := escala.Escala{
		Name:        name,
		DisplayName: strings.TrimSpace(sheetName),
		Days:        headers,
	}
	for _, row := range rows {
		person := escala.Person{
			Name:       pickString(row, nameKeys),
			Email:      pickString(row, emailKeys),
			Serial:     pickString(row, serialKeys),
			Modalidade: pickString(row, modalidadeKeys),
			Cells:      map[string]string{},
		}
		for column, header := range columnToHeader {
			if text := stringify(row[column]); text != "" {
				person.Cells[header] = text
			}
		}
		if person.Name == "" && person.Email == "" && person.Serial == "" {
			continue
		}
		def.People = append(def.People, person)
	}
	if len(def.People) == 0 {
		return escala.Escala{}, false
	}
	return def, true
}

// legacyEscala reads a schedule from the flat legacy export, where
// each entry already carries nomeEscala, headersDay and per-day keys.
func legacyEscala(row Row) (escala.Escala, bool) {
	name := pickString(row, escalaNameKeys)
	if name == "" {
		return escala.Escala{}, false
	}
	def := escala.Escala{
		Name:        name,
		DisplayName: pickString(row, escalaDisplayKeys),
		PeriodLabel: pickString(row, periodKeys),
		SheetURL:    pickString(row, sheetURLKeys),
		PDFURL:      pickString(row, pdfURLKeys),
	}
	if headers, ok := row["headersDay"].([]any); ok {
		for _, header := range headers {
			if day := normalize.NormalizeDayMonth(stringify(header)); day != "" {
				def.Days = append(def.Days, day)
			}
		}
	}
	for _, personRaw := range coerceRows(row["alunos"]) {
		person := escala.Person{
			Name:       pickString(personRaw, nameKeys),
			Email:      pickString(personRaw, emailKeys),
			Serial:     pickString(personRaw, serialKeys),
			Modalidade: pickString(personRaw, modalidadeKeys),
			Cells:      map[string]string{},
		}
		for key, value := range personRaw {
			if day := normalize.NormalizeDayMonth(key); day != "" {
				if text := stringify(value); text != "" {
					person.Cells[day] = text
				}
			}
		}
		if person.Name == "" && person.Email == "" && person.Serial == "" {
			continue
		}
		def.People = append(def.People, person)
	}
	if len(def.People) == 0 && len(def.Days) == 0 {
		return escala.Escala{}, false
	}
	return def, true
}

// normalizeAusencias reads the absence/makeup ledger, tolerant of the
// many date field spellings the sheet has accumulated.
func normalizeAusencias(rows []Row) []escala.AbsenceMakeup {
	var records []escala.AbsenceMakeup
	for _, row := range rows {
		record := escala.AbsenceMakeup{
			Name:       pickString(row, nameKeys),
			Email:      pickString(row, emailKeys),
			Serial:     pickString(row, serialKeys),
			AbsenceISO: normalize.NormalizeDate(pickFirst(row, absenceDateKeys)),
			MakeupISO:  normalize.NormalizeDate(pickFirst(row, makeupDateKeys)),
			Reason:     pickString(row, reasonKeys),
			Location:   pickString(row, locationKeys),
		}
		if record.Name == "" && record.Email == "" && record.Serial == "" {
			continue
		}
		if record.AbsenceISO == "" && record.MakeupISO == "" {
			continue
		}
		records = append(records, record)
	}
	return records
}

func normalizeAlunos(rows []Row) []aluno.Aluno {
	var alunos []aluno.Aluno
	for _, row := range rows {
		student := aluno.Aluno{
			Name:      pickString(row, nameKeys),
			Email:     pickString(row, emailKeys),
			Serial:    pickString(row, serialKeys),
			Course:    pickString(row, courseKeys),
			Status:    pickString(row, statusKeys),
			BirthDate: normalize.NormalizeDate(pickFirst(row, birthKeys)),
			Crefito:   pickString(row, crefitoKeys),
		}
		if student.Name == "" && student.Email == "" && student.Serial == "" {
			continue
		}
		alunos = append(alunos, student)
	}
	return alunos
}

// parseGrade reads a grade cell the way the sheet writes them: comma
// decimals, stray currency prefixes, embedded spaces. Blank or
// non-numeric cells parse to ok=false.
func parseGrade(value any) (float64, bool) {
	text := stringify(value)
	if text == "" {
		return 0, false
	}
	text = strings.TrimPrefix(text, "R$")
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, ",", ".")
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// identityColumn reports whether a theory-sheet column names the
// student rather than a subject.
func identityColumn(key string) bool {
	for _, list := range [][]string{nameKeys, emailKeys, serialKeys, courseKeys} {
		for _, alias := range list {
			if key == alias {
				return true
			}
		}
	}
	return false
}

// normalizeNotasTeoricas reads the theory-grades sheet: one row per
// student, one column per subject. Unparseable cells are skipped.
func normalizeNotasTeoricas(rows []Row) []aluno.TheoryGrades {
	var grades []aluno.TheoryGrades
	for _, row := range rows {
		entry := aluno.TheoryGrades{
			Name:     pickString(row, nameKeys),
			Email:    pickString(row, emailKeys),
			Serial:   pickString(row, serialKeys),
			Subjects: map[string]float64{},
		}
		if entry.Name == "" && entry.Email == "" && entry.Serial == "" {
			continue
		}
		for key, value := range row {
			if strings.TrimSpace(key) == "" || identityColumn(key) {
				continue
			}
			if n, ok := parseGrade(value); ok && n > 0 {
				entry.Subjects[key] = n
			}
		}
		grades = append(grades, entry)
	}
	return grades
}

// isPracticeSheetName matches the dynamically named practice-module
// sheets ("NP Cardio", "Prática UTI") while skipping the bookkeeping
// tabs that share the naming scheme.
func isPracticeSheetName(normName string) bool {
	if normName == "" {
		return false
	}
	if strings.Contains(normName, "resumo") || strings.Contains(normName, "template") || strings.Contains(normName, "config") {
		return false
	}
	if strings.HasPrefix(normName, "np") {
		return true
	}
	return strings.Contains(normName, "pratica") || strings.Contains(normName, "pratico")
}

var finalGradeRegex = regexp.MustCompile(`media\s*\(nota\s*final\):?`)

// normalizePractice reads one practice-module sheet. The module name
// comes from the first row when the sheet carries it, the sheet title
// otherwise; the grade is the sheet's own final-average column.
func normalizePractice(sheetName string, rows []Row) []aluno.PracticeGrade {
	if len(rows) == 0 {
		return nil
	}
	module := pickString(rows[0], praticaNameKeys)
	if module == "" {
		module = strings.TrimSpace(sheetName)
	}
	var grades []aluno.PracticeGrade
	for _, row := range rows {
		entry := aluno.PracticeGrade{
			Module: module,
			Name:   pickString(row, nameKeys),
			Email:  pickString(row, emailKeys),
			Serial: pickString(row, serialKeys),
		}
		if entry.Name == "" && entry.Email == "" && entry.Serial == "" {
			continue
		}
		final := 0.0
		for key, value := range row {
			if !finalGradeRegex.MatchString(normalize.Fold(key)) {
				continue
			}
			if n, ok := parseGrade(value); ok {
				final = n
			}
			break
		}
		if final <= 0 {
			continue
		}
		entry.Final = final
		grades = append(grades, entry)
	}
	return grades
}

// transformBulk reads a getAll payload in either shape: the {bySheet}
// export or the legacy flat object.
func transformBulk(payload Row) Snapshot {
	snapshot := Snapshot{LastUpdated: pickString(payload, lastUpdatedKeys)}

	bySheet, hasBySheet := payload["bySheet"].(map[string]any)
	if !hasBySheet {
		snapshot.Alunos = normalizeAlunos(coerceRows(payload["alunos"]))
		snapshot.Ausencias = normalizeAusencias(coerceRows(payload["ausenciasReposicoes"]))
		for _, row := range coerceRows(payload["escalas"]) {
			if def, ok := legacyEscala(row); ok {
				snapshot.Escalas = append(snapshot.Escalas, def)
			}
		}
		snapshot.Ponto = normalizeRecords(coerceRows(payload["ponto"]), "")
		snapshot.NotasTeoricas = normalizeNotasTeoricas(coerceRows(payload["notasTeoricas"]))
		if praticas, ok := payload["notasPraticas"].(map[string]any); ok {
			names := make([]string, 0, len(praticas))
			for name := range praticas {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				snapshot.NotasPraticas = append(snapshot.NotasPraticas, normalizePractice(name, coerceRows(praticas[name]))...)
			}
		}
		return snapshot
	}

	sheetIndex := map[string]string{}
	sheetNames := make([]string, 0, len(bySheet))
	for name := range bySheet {
		sheetIndex[normalizeSheetName(name)] = name
		sheetNames = append(sheetNames, name)
	}
	sort.Strings(sheetNames)

	pickSheet := func(candidates ...string) []Row {
		for _, candidate := range candidates {
			if original, ok := sheetIndex[normalizeSheetName(candidate)]; ok {
				return coerceRows(bySheet[original])
			}
		}
		return nil
	}

	snapshot.Alunos = normalizeAlunos(pickSheet("Alunos", "Lista de Alunos", "Base Alunos"))
	snapshot.Ausencias = normalizeAusencias(pickSheet("AusenciasReposicoes", "Ausencias Reposicoes", "Ausências e Reposições"))
	snapshot.Ponto = normalizeRecords(pickSheet("Ponto", "Registros Ponto", "Frequencia", "Frequência"), "")
	snapshot.NotasTeoricas = normalizeNotasTeoricas(pickSheet("NotasTeoricas", "Notas Teoricas", "Notas Teóricas"))

	for _, name := range sheetNames {
		if !isPracticeSheetName(normalizeSheetName(name)) {
			continue
		}
		snapshot.NotasPraticas = append(snapshot.NotasPraticas, normalizePractice(name, coerceRows(bySheet[name]))...)
	}

	// EscalaN sheets, in numeric order.
	escalaSheets := make([]string, 0, len(sheetNames))
	for _, name := range sheetNames {
		if escalaSheetRegex.MatchString(strings.TrimSpace(name)) {
			escalaSheets = append(escalaSheets, name)
		}
	}
	sort.Slice(escalaSheets, func(i, j int) bool {
		return escalaSheetNumber(escalaSheets[i]) < escalaSheetNumber(escalaSheets[j])
	})
	for _, name := range escalaSheets {
		if def, ok := aggregateEscalaSheet(name, coerceRows(bySheet[name])); ok {
			snapshot.Escalas = append(snapshot.Escalas, def)
		}
	}
	if len(snapshot.Escalas) == 0 {
		for _, row := range pickSheet("Escalas", "EscalasDisponiveis", "Escalas Alunos") {
			if def, ok := legacyEscala(row); ok {
				snapshot.Escalas = append(snapshot.Escalas, def)
			}
		}
	}
	return snapshot
}

func escalaSheetNumber(name string) int {
	match := digitsRegex.FindStringSubmatch(name)
	if match == nil {
		return 0
	}
	n, _ := strconv.Atoi(match[1])
	return n
}

func normalizeRecords(rows []Row, fallbackDate string) []ponto.Record {
	var records []ponto.Record
	dropped := 0
	for _, row := range rows {
		record, ok := normalizeRecord(row, fallbackDate)
		if !ok {
			dropped++
			continue
		}
		records = append(records, record)
	}
	if dropped > 0 {
		slog.Warn("Dropped unkeyable or dateless attendance rows", "count", dropped)
	}
	return records
}

// extractDayPayload reads a day response: records under any of the
// tolerated container keys (or grouped by escala), plus the envelope.
func extractDayPayload(payload Row, fallbackDate string) DayPayload {
	day := DayPayload{
		SelectedDate:   normalize.NormalizeDate(pickFirst(payload, selectedDateKeys)),
		SelectedEscala: pickString(payload, selectedEscalaKeys),
		LastUpdated:    pickString(payload, lastUpdatedKeys),
		EscalasByDate:  map[string][]string{},
	}

	if dates, ok := pickFirst(payload, datesKeys).([]any); ok {
		for _, date := range dates {
			if iso := normalize.NormalizeDate(stringify(date)); iso != "" {
				day.Dates = append(day.Dates, iso)
			}
		}
	}
	if byDate, ok := pickFirst(payload, escalasByDateKeys).(map[string]any); ok {
		for date, list := range byDate {
			iso := normalize.NormalizeDate(date)
			if iso == "" {
				continue
			}
			if names, ok := list.([]any); ok {
				for _, name := range names {
					if label := stringify(name); label != "" {
						day.EscalasByDate[iso] = append(day.EscalasByDate[iso], label)
					}
				}
			}
		}
	}

	if grouped, ok := payload[groupedRecordsKey].(map[string]any); ok {
		groupNames := make([]string, 0, len(grouped))
		for name := range grouped {
			groupNames = append(groupNames, name)
		}
		sort.Strings(groupNames)
		for _, name := range groupNames {
			records := normalizeRecords(coerceRows(grouped[name]), fallbackDate)
			for i := range records {
				if records[i].Escala == "" {
					records[i].Escala = name
					records[i].EscalaKey = escalaKeyOf(name)
				}
			}
			day.Records = append(day.Records, records...)
		}
		return day
	}

	for _, key := range recordContainerKeys {
		rows := coerceRows(payload[key])
		if len(rows) == 0 {
			continue
		}
		day.Records = normalizeRecords(rows, fallbackDate)
		break
	}
	return day
}
