package record

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/compose-network/orbit-testnet/internal/infra/filesystem"
	"github.com/compose-network/orbit-testnet/internal/logger"
)

const (
	filePrefix = "deployment-"
	fileSuffix = ".json"
)

// ErrNoDeployments is returned when the deployments directory holds no
// records; the operator has to run the deploy pipeline first.
var ErrNoDeployments = errors.New("no deployment records found, run 'orbit-testnet deploy' first")

// Store persists deployment records under a single directory. Persist is
// append-only; RewriteContracts is the one operation allowed to modify an
// existing file, and it rewrites the same file in place.
type Store struct {
	dir    string
	reader filesystem.Reader
	writer filesystem.Writer
	logger *slog.Logger
	now    func() time.Time
}

func NewStore(dir string, reader filesystem.Reader, writer filesystem.Writer) *Store {
	return &Store{
		dir:    dir,
		reader: reader,
		writer: writer,
		logger: logger.Named("record_store"),
		now:    time.Now,
	}
}

// Persist writes the record to a new timestamped file and returns its path.
// A prior record is never overwritten; a name collision bumps the timestamp.
func (s *Store) Persist(record *DeploymentRecord) (string, error) {
	millis := s.now().UnixMilli()
	path := s.fileName(record.ChainID, millis)
	for {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		millis++
		path = s.fileName(record.ChainID, millis)
	}

	if err := s.writer.WriteJSON(path, record); err != nil {
		return "", fmt.Errorf("failed to persist deployment record: %w", err)
	}

	s.logger.With("path", path).Info("deployment record persisted")

	return path, nil
}

// LoadLatest returns the most recent record in the directory together with
// its file path.
func (s *Store) LoadLatest() (*DeploymentRecord, string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrNoDeployments
		}
		return nil, "", fmt.Errorf("failed to list deployments directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		names = append(names, name)
	}

	if len(names) == 0 {
		return nil, "", ErrNoDeployments
	}

	// Timestamp-suffixed names sort chronologically per chain id, but chain
	// ids of different magnitude would win a plain lexical sort, so order by
	// the timestamp suffix with the name as tiebreak.
	sort.Slice(names, func(i, j int) bool {
		ti, tj := timestampOf(names[i]), timestampOf(names[j])
		if ti != tj {
			return ti < tj
		}
		return names[i] < names[j]
	})

	path := filepath.Join(s.dir, names[len(names)-1])

	var record DeploymentRecord
	if err := s.reader.ReadJSON(path, &record); err != nil {
		return nil, "", fmt.Errorf("failed to read deployment record %q: %w", path, err)
	}

	return &record, path, nil
}

// RewriteContracts populates the contracts mapping of an already persisted
// record, read-modify-write of the same file. Given the same transaction the
// rewritten mapping is identical on every run.
func (s *Store) RewriteContracts(path string, contracts map[string]string, blockNumber uint64, rawLogs []RawLog) error {
	var record DeploymentRecord
	if err := s.reader.ReadJSON(path, &record); err != nil {
		return fmt.Errorf("failed to read deployment record %q: %w", path, err)
	}

	record.Contracts = contracts
	record.RawLogs = rawLogs
	if blockNumber != 0 {
		record.BlockNumber = blockNumber
	}

	if err := s.writer.WriteJSON(path, &record); err != nil {
		return fmt.Errorf("failed to rewrite deployment record %q: %w", path, err)
	}

	s.logger.With("path", path).With("contracts", len(contracts)).Info("deployment record contracts updated")

	return nil
}

func (s *Store) fileName(chainID uint64, millis int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d-%d%s", filePrefix, chainID, millis, fileSuffix))
}

func timestampOf(name string) int64 {
	trimmed := strings.TrimSuffix(name, fileSuffix)
	idx := strings.LastIndex(trimmed, "-")
	if idx < 0 {
		return 0
	}
	millis, err := strconv.ParseInt(trimmed[idx+1:], 10, 64)
	if err != nil {
		return 0
	}
	return millis
}
