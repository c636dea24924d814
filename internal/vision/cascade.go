package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	pigo "github.com/esimov/pigo/core"
)

const (
	minFaceSize = 60
	maxFaceSize = 1200
	// detections below this quality are treated as noise
	minQuality = 5.0
)

// CascadeDetector runs pigo face and pupil cascades over a decoded frame.
type CascadeDetector struct {
	faces *pigo.Pigo
	eyes  *pigo.PuplocCascade
}

func NewCascadeDetector(faceCascade, puplocCascade []byte) (*CascadeDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(faceCascade)
	if err != nil {
		return nil, fmt.Errorf("vision: unpack face cascade: %w", err)
	}
	plc, err := pigo.NewPuplocCascade().UnpackCascade(puplocCascade)
	if err != nil {
		return nil, fmt.Errorf("vision: unpack puploc cascade: %w", err)
	}
	return &CascadeDetector{faces: classifier, eyes: plc}, nil
}

// LoadCascadeDetector reads the two cascade binaries from disk.
func LoadCascadeDetector(faceFinderPath, puplocPath string) (*CascadeDetector, error) {
	face, err := os.ReadFile(faceFinderPath)
	if err != nil {
		return nil, fmt.Errorf("vision: read face cascade: %w", err)
	}
	pup, err := os.ReadFile(puplocPath)
	if err != nil {
		return nil, fmt.Errorf("vision: read puploc cascade: %w", err)
	}
	return NewCascadeDetector(face, pup)
}

// Analyze classifies one raw frame. Undecodable payloads yield a no-signal
// observation instead of an error.
func (d *CascadeDetector) Analyze(frame []byte) Observation {
	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return Observation{}
	}

	bounds := img.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()
	if cols == 0 || rows == 0 {
		return Observation{}
	}

	params := pigo.CascadeParams{
		MinSize:     minFaceSize,
		MaxSize:     maxFaceSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(img),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.faces.RunCascade(params, 0.0)
	dets = d.faces.ClusterDetections(dets, 0.2)

	var faces []pigo.Detection
	for _, det := range dets {
		if det.Q >= minQuality {
			faces = append(faces, det)
		}
	}

	obs := Observation{OK: true, FaceCount: len(faces)}
	if len(faces) != 1 {
		return obs
	}

	face := faces[0]
	obs.Face = faceRect(face)
	obs.FaceCenterX = normalizedCenterX(face.Col, cols)
	obs.EyesVisible = d.eyesVisible(face, params.ImageParams)
	return obs
}

// eyesVisible locates pupils at the canonical offsets inside the face box; one
// confident hit is enough.
func (d *CascadeDetector) eyesVisible(face pigo.Detection, img pigo.ImageParams) bool {
	left := pigo.Puploc{
		Row:      face.Row - int(0.075*float32(face.Scale)),
		Col:      face.Col - int(0.175*float32(face.Scale)),
		Scale:    float32(face.Scale) * 0.25,
		Perturbs: 50,
	}
	if eye := d.eyes.RunDetector(left, img, 0.0, false); eye.Row > 0 && eye.Col > 0 {
		return true
	}

	right := pigo.Puploc{
		Row:      face.Row - int(0.075*float32(face.Scale)),
		Col:      face.Col + int(0.185*float32(face.Scale)),
		Scale:    float32(face.Scale) * 0.25,
		Perturbs: 50,
	}
	eye := d.eyes.RunDetector(right, img, 0.0, false)
	return eye.Row > 0 && eye.Col > 0
}

func faceRect(det pigo.Detection) image.Rectangle {
	half := det.Scale / 2
	return image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half)
}

func normalizedCenterX(col, cols int) float64 {
	if cols <= 0 {
		return 0
	}
	return float64(col) / float64(cols)
}
