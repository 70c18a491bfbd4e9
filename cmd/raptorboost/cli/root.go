// Package cli implements the raptorboost client command-line interface.
//
// The client is explicitly ambient to this repository's core: file
// enumeration, hashing, sorting and a retry policy are the caller's
// responsibility per design, so this implementation is deliberately thin
// and reports progress as structured log lines rather than a terminal UI.
package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/meigma/raptorboost/api/raptorboostpb"
	"github.com/meigma/raptorboost/cmd/raptorboost/cli/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "raptorboost <host> <files...>",
	Short: "Upload files to a raptorboostd daemon, skipping content already stored",
	Args:  cobra.MinimumNArgs(2),
	RunE:  run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.Flags().Int("port", 7272, "daemon port")
	rootCmd.Flags().Bool("no-sort", false, "upload files in argument order instead of smallest-first")
	rootCmd.Flags().String("name", "", "name of the transfer view to graft uploaded files into (default: a timestamp)")
	rootCmd.Flags().Bool("force-unlock", false, "evict a pre-existing advisory lock instead of failing")
	rootCmd.Flags().Bool("force-name", false, "replace an existing transfer view of the same name")

	//nolint:errcheck
	viper.BindPFlag("port", rootCmd.Flags().Lookup("port"))
}

// initConfig loads an optional YAML config file from the XDG config
// directory and binds RAPTORBOOST_-prefixed env vars, the same env-var
// convention as the daemon CLI (which reads no config file).
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if dir, err := config.Dir(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("RAPTORBOOST")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig() // config file is optional
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

type pendingFile struct {
	path   string // relative path used as the transfer name
	abs    string
	digest string
	size   int64
}

func run(cmd *cobra.Command, args []string) error {
	host := args[0]
	roots := args[1:]

	port := viper.GetInt("port")
	noSort, _ := cmd.Flags().GetBool("no-sort")
	name, _ := cmd.Flags().GetString("name")
	forceUnlock, _ := cmd.Flags().GetBool("force-unlock")
	forceName, _ := cmd.Flags().GetBool("force-name")

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	files, err := expandAndHash(roots)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}
	if !noSort {
		sort.Slice(files, func(i, j int) bool { return files[i].size < files[j].size })
	}

	ctx, cancel := signalContext()
	defer cancel()

	conn, err := grpc.NewClient(fmt.Sprintf("%s:%d", host, port), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial daemon: %w", err)
	}
	defer conn.Close()
	client := raptorboostpb.NewRaptorBoostAPIClient(conn)

	digests := make([]string, len(files))
	for i, f := range files {
		digests[i] = f.digest
	}
	states, err := client.UploadFiles(ctx, &raptorboostpb.UploadFilesRequest{Digests: digests})
	if err != nil {
		return fmt.Errorf("check existing content: %w", err)
	}
	offsets := make(map[string]int64, len(states.GetFileStates()))
	complete := make(map[string]bool, len(states.GetFileStates()))
	for _, fs := range states.GetFileStates() {
		complete[fs.GetDigest()] = fs.GetState() == raptorboostpb.FileState_COMPLETE
		offsets[fs.GetDigest()] = int64(fs.GetOffset())
	}

	var toSend []pendingFile
	for _, f := range files {
		if complete[f.digest] {
			logger.Info("already stored, skipping upload", "file", f.path, "digest", f.digest)
			continue
		}
		toSend = append(toSend, f)
	}

	if len(toSend) > 0 {
		if err := uploadMissing(ctx, client, toSend, offsets, forceUnlock, logger); err != nil {
			return err
		}
	}

	mappings := make([]*raptorboostpb.NameMapping, len(files))
	for i, f := range files {
		mappings[i] = &raptorboostpb.NameMapping{Digest: f.digest, Name: filepath.ToSlash(f.path)}
	}
	namesResp, err := client.AssignNames(ctx, &raptorboostpb.AssignNamesRequest{Mappings: mappings, Force: forceName, Name: name})
	if err != nil {
		return fmt.Errorf("assign names: %w", err)
	}
	for _, st := range namesResp.GetStatuses() {
		if !st.GetOk() {
			logger.Warn("failed to assign name", "name", st.GetName(), "error", st.GetMessage())
		}
	}

	return nil
}

// uploadMissing streams every file in toSend to the daemon in a single
// SendFileData call, resuming each one at the offset the daemon already
// reported for it.
func uploadMissing(ctx context.Context, client raptorboostpb.RaptorBoostAPIClient, toSend []pendingFile, offsets map[string]int64, force bool, logger *slog.Logger) error {
	stream, err := client.SendFileData(ctx)
	if err != nil {
		return fmt.Errorf("open upload stream: %w", err)
	}

	const chunkSize = 1 << 20 // 1 MiB

	for _, f := range toSend {
		file, err := os.Open(f.abs)
		if err != nil {
			return fmt.Errorf("open %s: %w", f.path, err)
		}

		offset := offsets[f.digest]
		if offset > 0 {
			if _, err := file.Seek(offset, io.SeekStart); err != nil {
				_ = file.Close()
				return fmt.Errorf("seek %s to resume offset: %w", f.path, err)
			}
			logger.Info("resuming upload", "file", f.path, "from", humanize.Bytes(uint64(offset)))
		}

		buf := make([]byte, chunkSize)
		first := true
		var sent int64
		for {
			n, readErr := file.Read(buf)
			if n > 0 {
				last := errorsIsEOFAfter(file, readErr)
				if err := stream.Send(&raptorboostpb.FileChunk{
					Digest: f.digest,
					Data:   append([]byte(nil), buf[:n]...),
					First:  first,
					Last:   last,
					Force:  force,
				}); err != nil {
					_ = file.Close()
					return fmt.Errorf("send chunk for %s: %w", f.path, err)
				}
				first = false
				sent += int64(n)
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				_ = file.Close()
				return fmt.Errorf("read %s: %w", f.path, readErr)
			}
		}
		if first {
			// Nothing was read (an empty file, or the daemon already holds
			// every byte): one empty chunk still opens and completes the file.
			if err := stream.Send(&raptorboostpb.FileChunk{Digest: f.digest, First: true, Last: true, Force: force}); err != nil {
				_ = file.Close()
				return fmt.Errorf("send chunk for %s: %w", f.path, err)
			}
		}
		_ = file.Close()
		logger.Info("uploaded", "file", f.path, "bytes", humanize.Bytes(uint64(sent)))
	}

	resp, err := stream.CloseAndRecv()
	if err != nil {
		return fmt.Errorf("finish upload stream: %w", err)
	}
	for _, st := range resp.GetStatuses() {
		if st.GetStatus() != raptorboostpb.FileStatus_OK {
			logger.Warn("upload failed", "digest", st.GetDigest(), "status", st.GetStatus(), "message", st.GetMessage())
		}
	}
	return nil
}

// errorsIsEOFAfter peeks whether the file has any bytes left after the
// current read, so the caller can mark the chunk it just read as the final
// one for its file without an extra empty Send.
func errorsIsEOFAfter(f *os.File, lastErr error) bool {
	if lastErr == io.EOF {
		return true
	}
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return pos >= info.Size()
}

// expandAndHash recursively expands directory arguments, hashes every
// regular file found, and deduplicates by digest.
func expandAndHash(roots []string) ([]pendingFile, error) {
	seen := make(map[string]struct{})
	var files []pendingFile

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}

		base := filepath.Dir(root)
		if info.IsDir() {
			base = root
		}

		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(base, path)
			if err != nil {
				rel = filepath.Base(path)
			}
			digest, size, err := hashFile(path)
			if err != nil {
				return err
			}
			if _, dup := seen[digest]; dup {
				return nil
			}
			seen[digest] = struct{}{}
			files = append(files, pendingFile{path: filepath.ToSlash(rel), abs: path, digest: digest, size: size})
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}
	return files, nil
}

func hashFile(path string) (digest string, size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
