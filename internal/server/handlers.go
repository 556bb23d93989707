package server

import (
	"net/http"
	"time"

	"vigia/internal/api"
	"vigia/internal/detect"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	classes := s.detector.Classes()

	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:           "healthy",
		DetectionRunning: s.detector.Running(),
		Timestamp:        now,
		ClassesLoaded:    len(classes),
		AvailableClasses: classes,
		TotalDetected:    s.detector.Total(),
		ActiveObjects:    s.detector.ActiveCount(now),
		TrackedObjects:   s.detector.TrackedCount(),
		RunID:            s.detector.RunID(),
	})
}

func (s *Server) handleVehicleCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.CountResponse{
		VehicleCount: s.detector.Total(),
		Classes:      s.detector.Classes(),
	})
}

func (s *Server) handleVehicleStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	classStats := make(map[string]api.ClassStat)
	for cls, cc := range s.detector.ClassStats() {
		classStats[cls] = api.ClassStat{Count: cc.Count, Percentage: cc.Percentage}
	}

	writeJSON(w, http.StatusOK, api.StatsResponse{
		IsRunning:     s.detector.Running(),
		CurrentCount:  s.detector.Total(),
		ActiveObjects: s.detector.ActiveCount(now),
		Analytics:     s.recorder.Snapshot(),
		StatsByClass:  classStats,
		LastReset:     s.detector.LastReset(),
	})
}

func (s *Server) handleDetectedObjects(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	tracks := s.detector.Objects()

	objects := make([]api.DetectedObject, 0, len(tracks))
	active := 0
	for _, tr := range tracks {
		obj := objectView(tr, now, s.detector.ExpireAfter())
		if obj.Status == api.StatusActive {
			active++
		}
		objects = append(objects, obj)
	}

	writeJSON(w, http.StatusOK, api.ObjectsResponse{
		ActiveObjects: active,
		TotalObjects:  len(objects),
		Objects:       objects,
	})
}

func (s *Server) handleClasses(w http.ResponseWriter, r *http.Request) {
	classes := s.detector.Classes()
	mapping := make(map[int]string, len(classes))
	for i, cls := range classes {
		mapping[i] = cls
	}

	writeJSON(w, http.StatusOK, api.ClassesResponse{
		TotalClasses: len(classes),
		ClassNames:   classes,
		ClassMapping: mapping,
	})
}

func (s *Server) handleStartDetection(w http.ResponseWriter, r *http.Request) {
	started := s.detector.Start()

	message := "Detection started"
	if !started {
		message = "Detection already running"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": started,
		"message": message,
		"classes": s.detector.Classes(),
	})
}

func (s *Server) handleStopDetection(w http.ResponseWriter, r *http.Request) {
	s.detector.Stop()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Detection stopped",
	})
}

func (s *Server) handleResetCount(w http.ResponseWriter, r *http.Request) {
	s.detector.Reset()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Count reset",
		"new_count": s.detector.Total(),
	})
}

// objectView converts a track into its wire representation at a given
// instant.
func objectView(tr detect.Track, now time.Time, expireAfter time.Duration) api.DetectedObject {
	status := api.StatusActive
	if tr.Expired(now, expireAfter) {
		status = api.StatusExpired
	}
	return api.DetectedObject{
		ID:         tr.ID,
		Type:       tr.Type,
		Confidence: tr.Confidence,
		DetectedAt: tr.FirstSeen.Format("15:04:05"),
		Status:     status,
		Updates:    tr.Updates,
		Duration:   now.Sub(tr.FirstSeen).Truncate(time.Second).String(),
	}
}
