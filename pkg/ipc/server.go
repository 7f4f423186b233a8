package ipc

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	hslog "github.com/yeojin-dev/hangulsearch/internal/logger"
	"github.com/yeojin-dev/hangulsearch/pkg/ranking"
	"github.com/yeojin-dev/hangulsearch/pkg/search"
	"github.com/yeojin-dev/hangulsearch/pkg/telemetry"
)

// Server reads one msgpack-encoded request per line from reader and writes
// one msgpack-encoded response per line to writer, dispatching each
// against index.
type Server struct {
	index     *search.Index[string]
	telemetry *telemetry.Recorder
	reader    *bufio.Reader
	writer    *bufio.Writer
	log       *log.Logger
	startedAt time.Time
}

// New builds a Server over index, reading requests from r and writing
// responses to w. If rec is non-nil it is attached to index and reported
// in HealthResponse.
func New(index *search.Index[string], rec *telemetry.Recorder, r io.Reader, w io.Writer) *Server {
	if rec != nil {
		index.SetTelemetry(rec)
	}
	return &Server{
		index:     index,
		telemetry: rec,
		reader:    bufio.NewReader(r),
		writer:    bufio.NewWriter(w),
		log:       hslog.New("ipc"),
		startedAt: time.Now(),
	}
}

// Serve reads requests until the reader returns io.EOF, dispatching each
// line to its handler. It returns nil on a clean EOF, or the first
// non-EOF read/write error encountered.
func (s *Server) Serve() error {
	for {
		line, err := s.reader.ReadBytes('\n')
		if len(line) > 0 {
			s.handleLine(line)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func (s *Server) handleLine(line []byte) {
	var env envelope
	if err := msgpack.Unmarshal(line, &env); err != nil {
		s.log.Error("malformed request", "err", err)
		s.send(ErrorResponse{Error: "malformed request: " + err.Error()})
		return
	}

	switch env.Type {
	case KindSearch:
		var req SearchRequest
		if err := msgpack.Unmarshal(line, &req); err != nil {
			s.send(ErrorResponse{ID: env.ID, Error: err.Error()})
			return
		}
		s.handleSearch(req)
	case KindSimilar:
		var req SimilarRequest
		if err := msgpack.Unmarshal(line, &req); err != nil {
			s.send(ErrorResponse{ID: env.ID, Error: err.Error()})
			return
		}
		s.handleSimilar(req)
	case KindExplain:
		var req ExplainRequest
		if err := msgpack.Unmarshal(line, &req); err != nil {
			s.send(ErrorResponse{ID: env.ID, Error: err.Error()})
			return
		}
		s.handleExplain(req)
	case KindHealth:
		var req HealthRequest
		if err := msgpack.Unmarshal(line, &req); err != nil {
			s.send(ErrorResponse{ID: env.ID, Error: err.Error()})
			return
		}
		s.handleHealth(req)
	default:
		s.send(ErrorResponse{ID: env.ID, Error: fmt.Sprintf("unknown request type %q", env.Type)})
	}
}

func (s *Server) handleSearch(req SearchRequest) {
	start := time.Now()
	mode := parseMode(req.Mode)
	items := s.index.Search(req.Query, mode)
	s.send(SearchResponse{
		ID:          req.ID,
		Items:       items,
		Count:       len(items),
		TimeTakenMs: time.Since(start).Milliseconds(),
	})
}

func parseMode(m string) search.Mode {
	switch m {
	case "prefix":
		return search.Prefix
	case "exact":
		return search.Exact
	default:
		return search.Contains
	}
}

func (s *Server) handleSimilar(req SimilarRequest) {
	start := time.Now()
	opts := ranking.Options{
		Limit:        req.Limit,
		MinimumScore: req.MinimumScore,
	}
	if req.IncludeLayoutVariants != nil {
		opts.IncludeLayoutVariants = *req.IncludeLayoutVariants
	} else {
		opts.IncludeLayoutVariants = true
	}

	results := s.index.SearchSimilar(req.Query, opts)
	matches := make([]SimilarMatch, len(results))
	for i, r := range results {
		matches[i] = SimilarMatch{Key: r.Item, Score: r.Breakdown.Total}
	}
	s.send(SimilarResponse{
		ID:          req.ID,
		Items:       matches,
		Count:       len(matches),
		TimeTakenMs: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleExplain(req ExplainRequest) {
	start := time.Now()
	opts := ranking.Options{
		Limit:                 req.Limit,
		IncludeLayoutVariants: true,
	}

	results := s.index.ExplainSimilar(req.Query, opts)
	matches := make([]ExplainedMatch, len(results))
	for i, r := range results {
		matches[i] = ExplainedMatch{
			Key:         r.Item,
			Score:       r.Breakdown.Total,
			Detail:      r.DetailText,
			EditSim:     r.Breakdown.EditSim,
			JaccardSim:  r.Breakdown.JaccardSim,
			KeyboardSim: r.Breakdown.KeyboardSim,
			JamoSim:     r.Breakdown.JamoSim,
			ExactBonus:  r.Breakdown.ExactBonus,
			PrefixBonus: r.Breakdown.PrefixBonus,
		}
	}
	s.send(ExplainResponse{
		ID:          req.ID,
		Items:       matches,
		Count:       len(matches),
		TimeTakenMs: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleHealth(req HealthRequest) {
	resp := HealthResponse{
		ID:        req.ID,
		Status:    "ok",
		ItemCount: s.index.Size(),
		UptimeMs:  float64(time.Since(s.startedAt).Milliseconds()),
	}
	if s.telemetry != nil {
		snap := s.telemetry.Snapshot()
		resp.CacheHitCount = snap.CacheHitCount
		resp.ReturnedItemCount = snap.ReturnedItemCount
	}
	s.send(resp)
}

func (s *Server) send(v any) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		s.log.Error("failed to encode response", "err", err)
		return
	}
	if _, err := s.writer.Write(data); err != nil {
		s.log.Error("failed to write response", "err", err)
		return
	}
	if err := s.writer.WriteByte('\n'); err != nil {
		s.log.Error("failed to write response delimiter", "err", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.log.Error("failed to flush response", "err", err)
	}
}
