// Package rpcserver implements the Streaming Service: the gRPC surface
// that exposes the Transfer Controller and Name Grafter to clients.
//
// Method shape (leader-check-free unary handlers delegating straight to a
// manager, client-streaming loop handled explicitly) is grounded on
// cuemby-warren's pkg/api/server.go, the only complete gRPC service
// implementation in the example pack.
package rpcserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/meigma/raptorboost/api/raptorboostpb"
	"github.com/meigma/raptorboost/internal/namegraft"
	"github.com/meigma/raptorboost/internal/transfer"
)

// Version is the server's reported version, set via ldflags at build time.
var Version = "dev"

// Server implements raptorboostpb.RaptorBoostAPIServer.
type Server struct {
	raptorboostpb.UnimplementedRaptorBoostAPIServer

	controller *transfer.Controller
	grafter    *namegraft.Grafter
	logger     *slog.Logger
	grpc       *grpc.Server
}

// New creates a Server delegating to controller and grafter.
func New(controller *transfer.Controller, grafter *namegraft.Grafter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{controller: controller, grafter: grafter, logger: logger}
	s.grpc = grpc.NewServer()
	raptorboostpb.RegisterRaptorBoostAPIServer(s.grpc, s)
	return s
}

// Serve listens on addr and blocks serving RPCs until the listener or the
// gRPC server stops.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("rpcserver: listen: %w", err)
	}
	return s.ServeListener(lis)
}

// ServeListener blocks serving RPCs on an already-bound listener. Useful
// for tests that need to know the bound port before the server starts.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("serving", "addr", lis.Addr().String())
	return s.grpc.Serve(lis)
}

// GracefulStop stops accepting new RPCs and waits for in-flight ones to
// finish.
func (s *Server) GracefulStop() {
	s.grpc.GracefulStop()
}

// GetVersion reports the server's build version.
func (s *Server) GetVersion(ctx context.Context, req *raptorboostpb.GetVersionRequest) (*raptorboostpb.GetVersionResponse, error) {
	return &raptorboostpb.GetVersionResponse{Version: Version}, nil
}

// UploadFiles reports the stored state of every requested digest.
func (s *Server) UploadFiles(ctx context.Context, req *raptorboostpb.UploadFilesRequest) (*raptorboostpb.UploadFilesResponse, error) {
	states := make([]*raptorboostpb.FileState, 0, len(req.GetDigests()))
	for _, digest := range req.GetDigests() {
		check, err := s.controller.CheckFile(digest)
		if err != nil {
			return nil, mapError(err)
		}
		fs := &raptorboostpb.FileState{Digest: digest}
		switch {
		case check.Complete:
			fs.State = raptorboostpb.FileState_COMPLETE
		case check.Offset > 0:
			fs.State = raptorboostpb.FileState_PARTIAL
			fs.Offset = uint64(check.Offset)
		default:
			fs.State = raptorboostpb.FileState_MISSING
		}
		states = append(states, fs)
	}
	return &raptorboostpb.UploadFilesResponse{FileStates: states}, nil
}

// SendFileData consumes a stream of FileChunks, one or more files back to
// back, and writes each to the Transfer Controller. A file's chunks must
// be contiguous and marked first/last; a file is promoted to the complete
// store only when its last chunk's digest verifies, exactly as
// transfer.Session.Complete implements it. The server does not promote a
// file on stream end without an explicit last chunk: an aborted upload
// simply leaves a resumable partial behind.
//
// The stream starts in the Idle state (no active session). A chunk marked
// first starts a new session, replacing any session from a just-completed
// file. A chunk arriving in Idle that is not marked first is malformed and
// fails the whole stream with InvalidArgument. A failure in StartTransfer
// itself (lock conflict, already-complete, path sanitization, or any other
// internal error) also terminates the stream immediately, mapped to its
// corresponding RPC status — it does not merely poison that one file's
// status and continue. Failures completing an individual file (checksum
// mismatch, rename failure) are reported per-file in the response instead,
// and the stream continues to the next file.
func (s *Server) SendFileData(stream raptorboostpb.RaptorBoostAPI_SendFileDataServer) error {
	var (
		statuses []*raptorboostpb.FileStatus
		session  *transfer.Session
		digest   string
	)

	closeSession := func() {
		if session != nil {
			_ = session.Close()
			session = nil
		}
	}
	defer closeSession()

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("rpcserver: recv chunk: %w", err)
		}

		if chunk.GetFirst() {
			closeSession()
			digest = chunk.GetDigest()
			session, err = s.controller.StartTransfer(digest, chunk.GetForce())
			if err != nil {
				return mapError(err)
			}
		} else if session == nil {
			return status.Error(codes.InvalidArgument, "first packet not marked as first")
		}

		if _, err := session.Write(chunk.GetData()); err != nil {
			statuses = append(statuses, errorStatus(digest, err))
			closeSession()
			continue
		}

		if chunk.GetLast() {
			if err := session.Complete(); err != nil {
				statuses = append(statuses, errorStatus(digest, err))
			} else {
				statuses = append(statuses, &raptorboostpb.FileStatus{Digest: digest, Status: raptorboostpb.FileStatus_OK})
			}
			session = nil
		}
	}

	return stream.SendAndClose(&raptorboostpb.SendFileDataResponse{Statuses: statuses})
}

func errorStatus(digest string, err error) *raptorboostpb.FileStatus {
	code := raptorboostpb.FileStatus_ERROR
	if errors.Is(err, transfer.ErrChecksumMismatch) {
		code = raptorboostpb.FileStatus_CHECKSUM_MISMATCH
	}
	return &raptorboostpb.FileStatus{Digest: digest, Status: code, Message: err.Error()}
}

// AssignNames grafts names onto already-stored digests within the named
// transfer view transfers/<name>/ (or a timestamp-named one if req.Name is
// empty), creating that view directory first.
func (s *Server) AssignNames(ctx context.Context, req *raptorboostpb.AssignNamesRequest) (*raptorboostpb.AssignNamesResponse, error) {
	mappings := make([]namegraft.Mapping, 0, len(req.GetMappings()))
	for _, m := range req.GetMappings() {
		mappings = append(mappings, namegraft.Mapping{Digest: m.GetDigest(), Name: m.GetName()})
	}

	results, err := s.grafter.AssignNames(req.GetName(), mappings, req.GetForce())
	if err != nil {
		return nil, mapError(err)
	}

	statuses := make([]*raptorboostpb.NameStatus, 0, len(results))
	for _, r := range results {
		ns := &raptorboostpb.NameStatus{Name: r.Name, Ok: r.Err == nil}
		if r.Err != nil {
			ns.Message = r.Err.Error()
		}
		statuses = append(statuses, ns)
	}
	return &raptorboostpb.AssignNamesResponse{Statuses: statuses}, nil
}

// mapError translates the transfer package's sentinel errors to gRPC
// status codes.
func mapError(err error) error {
	switch {
	case errors.Is(err, transfer.ErrPathSanitization):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, transfer.ErrLockFailure):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, transfer.ErrAlreadyComplete):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, transfer.ErrChecksumMismatch):
		return status.Error(codes.DataLoss, err.Error())
	case errors.Is(err, transfer.ErrRenameFailed):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, namegraft.ErrTransferExists):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
