package state

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// FlatFileStore keeps one line-oriented history file and one key=value
// profile file per profile under a single directory. Writes are full
// read-modify-write rewrites; single-process access is assumed.
type FlatFileStore struct {
	dir string
}

func NewFlatFile(dir string) (*FlatFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FlatFileStore{dir: dir}, nil
}

func (s *FlatFileStore) LoadDay(ctx context.Context, profile ProfileID, day string) (*DayRecord, error) {
	history, err := s.LoadHistory(ctx, profile)
	if err != nil {
		return nil, err
	}
	rec, ok := history[day]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *FlatFileStore) LoadHistory(_ context.Context, profile ProfileID) (map[string]DayRecord, error) {
	if profile == "" {
		return nil, ErrProfileRequired
	}
	history := map[string]DayRecord{}
	f, err := os.Open(s.historyPath(profile))
	if err != nil {
		if os.IsNotExist(err) {
			return history, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if rec, ok := parseDayLine(scanner.Text()); ok {
			history[rec.Day] = rec
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *FlatFileStore) SaveDay(ctx context.Context, profile ProfileID, rec DayRecord) error {
	if profile == "" {
		return ErrProfileRequired
	}
	history, err := s.LoadHistory(ctx, profile)
	if err != nil {
		return err
	}
	history[rec.Day] = rec

	days := make([]string, 0, len(history))
	for day := range history {
		days = append(days, day)
	}
	sort.Strings(days)

	var b strings.Builder
	for _, day := range days {
		r := history[day]
		fmt.Fprintf(&b, "%s,%d,%d\n", r.Day, r.IntakeML, r.GoalML)
	}
	return os.WriteFile(s.historyPath(profile), []byte(b.String()), 0o644)
}

func (s *FlatFileStore) LoadProfileMeta(_ context.Context, profile ProfileID) (*ProfileMeta, error) {
	if profile == "" {
		return nil, ErrProfileRequired
	}
	f, err := os.Open(s.metaPath(profile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	values := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	meta := decodeMeta(values)
	return &meta, nil
}

func (s *FlatFileStore) SaveProfileMeta(_ context.Context, profile ProfileID, meta ProfileMeta) error {
	if profile == "" {
		return ErrProfileRequired
	}
	values := encodeMeta(meta)
	var b strings.Builder
	for _, key := range metaKeys(values) {
		b.WriteString(formatMetaLine(key, values[key]))
	}
	return os.WriteFile(s.metaPath(profile), []byte(b.String()), 0o644)
}

func (s *FlatFileStore) Close() error { return nil }

func (s *FlatFileStore) historyPath(profile ProfileID) string {
	return filepath.Join(s.dir, sanitizeProfile(profile)+"_water_log.txt")
}

func (s *FlatFileStore) metaPath(profile ProfileID) string {
	return filepath.Join(s.dir, sanitizeProfile(profile)+"_profile.txt")
}

// parseDayLine parses one `date,intake,goal` line. Malformed lines report
// ok=false and are skipped by callers rather than failing the whole load.
func parseDayLine(line string) (DayRecord, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return DayRecord{}, false
	}
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return DayRecord{}, false
	}
	intake, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || intake < 0 {
		return DayRecord{}, false
	}
	goal, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || goal <= 0 {
		return DayRecord{}, false
	}
	return DayRecord{Day: strings.TrimSpace(parts[0]), IntakeML: intake, GoalML: goal}, true
}

func sanitizeProfile(profile ProfileID) string {
	var b strings.Builder
	for _, r := range string(profile) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
