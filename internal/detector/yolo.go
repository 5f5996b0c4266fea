package detector

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// YOLO person class index and model input size (YOLOv8n, COCO classes).
const (
	personClassID = 0
	yoloInputSize = 640
)

// YOLOPersonDetector implements PersonDetector with a YOLOv8 ONNX model
// run through OpenCV's DNN module. Detections are matched against the
// previous frame by IoU to keep track IDs stable.
type YOLOPersonDetector struct {
	net          gocv.Net
	minConf      float64
	nmsThreshold float64

	mu     sync.Mutex
	tracks []personTrack
	nextID int
}

// personTrack is the tracker side of a detection: the last known box for
// a track ID plus how many update cycles it has gone unmatched.
type personTrack struct {
	id     int
	box    image.Rectangle
	misses int
}

// maxTrackMisses is how many detection cycles a track survives without a
// match before its ID is retired.
const maxTrackMisses = 15

// iouMatchThreshold is the minimum IoU for a detection to continue an
// existing track.
const iouMatchThreshold = 0.3

// NewYOLOPersonDetector loads a YOLOv8 ONNX model from modelPath.
// Returns an error if the model file is missing or cannot be loaded, in
// which case the caller should run without person tracking.
func NewYOLOPersonDetector(modelPath string, minConf float64) (*YOLOPersonDetector, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("yolo model not found: %s", modelPath)
	}

	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("failed to load yolo model: %s", modelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendOpenCV)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &YOLOPersonDetector{
		net:          net,
		minConf:      minConf,
		nmsThreshold: 0.45,
		nextID:       1,
	}, nil
}

// Track runs person detection on the frame and assigns stable track IDs.
func (d *YOLOPersonDetector) Track(frame *gocv.Mat) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	size := frame.Size()
	frameW, frameH := size[1], size[0]
	if frameW == 0 || frameH == 0 {
		return nil, fmt.Errorf("empty frame")
	}

	boxes, scores := d.forward(frame, frameW, frameH)
	boxes, confidences := d.suppress(boxes, scores)

	return d.assignTrackIDs(boxes, confidences), nil
}

// Close releases the DNN network.
func (d *YOLOPersonDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}

// forward runs the network and decodes person boxes above the confidence
// threshold, scaled back to frame pixel coordinates.
func (d *YOLOPersonDetector) forward(frame *gocv.Mat, frameW, frameH int) ([]image.Rectangle, []float32) {
	blob := gocv.BlobFromImage(*frame, 1.0/255.0,
		image.Pt(yoloInputSize, yoloInputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	// YOLOv8 output is 1x(4+classes)xN: one column per anchor, with the
	// box center/size in rows 0-3 and per-class scores from row 4.
	dims := output.Size()
	if len(dims) != 3 {
		return nil, nil
	}
	rows := dims[1]
	cols := dims[2]

	flat := output.Reshape(1, rows)
	defer flat.Close()

	scaleX := float64(frameW) / yoloInputSize
	scaleY := float64(frameH) / yoloInputSize

	var boxes []image.Rectangle
	var scores []float32

	for c := 0; c < cols; c++ {
		conf := flat.GetFloatAt(4+personClassID, c)
		if float64(conf) < d.minConf {
			continue
		}

		cx := float64(flat.GetFloatAt(0, c)) * scaleX
		cy := float64(flat.GetFloatAt(1, c)) * scaleY
		w := float64(flat.GetFloatAt(2, c)) * scaleX
		h := float64(flat.GetFloatAt(3, c)) * scaleY

		x1 := int(cx - w/2)
		y1 := int(cy - h/2)
		x2 := int(cx + w/2)
		y2 := int(cy + h/2)

		box := image.Rect(x1, y1, x2, y2).Intersect(image.Rect(0, 0, frameW, frameH))
		if box.Empty() {
			continue
		}

		boxes = append(boxes, box)
		scores = append(scores, conf)
	}

	return boxes, scores
}

// assignTrackIDs matches detections to existing tracks greedily by IoU,
// creating new tracks for unmatched detections and retiring tracks that
// have gone unmatched too long.
func (d *YOLOPersonDetector) assignTrackIDs(boxes []image.Rectangle, scores []float64) []Detection {
	matchedTrack := make([]bool, len(d.tracks))
	detections := make([]Detection, 0, len(boxes))

	for i, box := range boxes {
		bestIdx := -1
		bestIoU := iouMatchThreshold

		for t := range d.tracks {
			if matchedTrack[t] {
				continue
			}
			if iou := boxIoU(box, d.tracks[t].box); iou >= bestIoU {
				bestIoU = iou
				bestIdx = t
			}
		}

		var id int
		if bestIdx >= 0 {
			matchedTrack[bestIdx] = true
			d.tracks[bestIdx].box = box
			d.tracks[bestIdx].misses = 0
			id = d.tracks[bestIdx].id
		} else {
			id = d.nextID
			d.nextID++
			d.tracks = append(d.tracks, personTrack{id: id, box: box})
			matchedTrack = append(matchedTrack, true)
		}

		detections = append(detections, Detection{
			TrackID:    id,
			BBox:       box,
			Confidence: scores[i],
		})
	}

	// Age out tracks that found no detection this cycle.
	kept := d.tracks[:0]
	for t := range d.tracks {
		if !matchedTrack[t] {
			d.tracks[t].misses++
		}
		if d.tracks[t].misses <= maxTrackMisses {
			kept = append(kept, d.tracks[t])
		}
	}
	d.tracks = kept

	return detections
}

// suppress runs OpenCV non-maximum suppression over the candidates and
// returns the surviving boxes with their confidences.
func (d *YOLOPersonDetector) suppress(boxes []image.Rectangle, scores []float32) ([]image.Rectangle, []float64) {
	if len(boxes) == 0 {
		return nil, nil
	}

	indices := gocv.NMSBoxes(boxes, scores, float32(d.minConf), float32(d.nmsThreshold))

	kept := make([]image.Rectangle, 0, len(indices))
	confidences := make([]float64, 0, len(indices))
	for _, i := range indices {
		kept = append(kept, boxes[i])
		confidences = append(confidences, float64(scores[i]))
	}
	return kept, confidences
}

// boxIoU returns the intersection-over-union of two rectangles.
func boxIoU(a, b image.Rectangle) float64 {
	inter := a.Intersect(b)
	if inter.Empty() {
		return 0
	}
	interArea := float64(inter.Dx() * inter.Dy())
	union := float64(a.Dx()*a.Dy()+b.Dx()*b.Dy()) - interArea
	if union <= 0 {
		return 0
	}
	return interArea / union
}
