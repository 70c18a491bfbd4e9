package transfer

import (
	"encoding/hex"
	"fmt"
	"hash"
	"log/slog"
	"os"

	"github.com/meigma/raptorboost/internal/lockregistry"
)

// Session represents one open, exclusively-locked write to a digest's
// partial file. A Session is finished by either Complete (on success) or
// Close (to abandon it); both release the underlying lock. Once a Session is
// finished, further Complete or Write calls return ErrSessionClosed and
// further Close calls are no-ops.
type Session struct {
	digest       string
	partialPath  string
	completePath string
	file         *os.File
	hasher       hash.Hash
	offset       int64
	lock         *lockregistry.Handle
	logger       *slog.Logger
	done         bool
}

// Offset returns the current length of the partial file: the bytes already
// present when the session started plus every byte written by this session
// so far.
func (s *Session) Offset() int64 { return s.offset }

// Write appends data to the partial file and feeds it through the rolling
// digest. Like the original service, a single underlying write may write
// fewer bytes than requested; Write loops until all of data is written or
// an error occurs.
func (s *Session) Write(data []byte) (int, error) {
	if s.done {
		return 0, ErrSessionClosed
	}

	written := 0
	for written < len(data) {
		n, err := s.file.Write(data[written:])
		if n > 0 {
			if _, hashErr := s.hasher.Write(data[written : written+n]); hashErr != nil {
				return written, fmt.Errorf("transfer: hash write: %w", hashErr)
			}
			written += n
			s.offset += int64(n)
		}
		if err != nil {
			return written, fmt.Errorf("transfer: write partial: %w", err)
		}
	}
	return written, nil
}

// Complete verifies the accumulated hash against the session's digest and,
// on success, atomically renames the partial file into the complete store.
// On a checksum mismatch or a rename error the partial file is removed
// (best-effort) so a subsequent upload starts clean.
func (s *Session) Complete() error {
	if s.done {
		return ErrSessionClosed
	}
	s.done = true
	defer s.lock.Release()

	if err := s.file.Close(); err != nil {
		return fmt.Errorf("transfer: close partial: %w", err)
	}

	sum := hex.EncodeToString(s.hasher.Sum(nil))
	if sum != s.digest {
		if rmErr := os.Remove(s.partialPath); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Warn("failed to remove corrupt partial", "digest", s.digest, "error", rmErr)
		}
		return fmt.Errorf("%w: want %s got %s", ErrChecksumMismatch, s.digest, sum)
	}

	if err := os.Rename(s.partialPath, s.completePath); err != nil {
		if rmErr := os.Remove(s.partialPath); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Warn("failed to remove partial after rename error", "digest", s.digest, "error", rmErr)
		}
		return fmt.Errorf("%w: %v", ErrRenameFailed, err)
	}
	s.logger.Debug("transfer complete", "digest", s.digest, "bytes", s.offset)
	return nil
}

// Close abandons the session, leaving the partial file in place so a later
// call can resume it, and releases the digest's lock.
func (s *Session) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	defer s.lock.Release()
	return s.file.Close()
}
