// Package scanner drives the webcam QR capture loop and the checkout
// session built from decoded payloads.
package scanner

import (
	"fmt"
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"gocv.io/x/gocv"

	"labstock/internal/logger"
)

// Pipeline owns the camera device. It reads frames on a background
// goroutine, hands each frame to the frame callback for display, and
// hands every decoded QR payload to the decode callback. Start and
// Stop are idempotent.
type Pipeline struct {
	mu       sync.Mutex
	device   int
	interval time.Duration
	log      logger.Logger

	frameCallback  func(image.Image)
	decodeCallback func(string)

	running bool
	cancel  chan struct{}
	done    chan struct{}
}

func NewPipeline(device int, interval time.Duration, log logger.Logger) *Pipeline {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Pipeline{
		device:   device,
		interval: interval,
		log:      log,
	}
}

func (p *Pipeline) SetFrameCallback(callback func(image.Image)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frameCallback = callback
}

func (p *Pipeline) SetDecodeCallback(callback func(string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.decodeCallback = callback
}

// Start opens the camera and begins the capture loop.
func (p *Pipeline) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(p.device)
	if err != nil {
		return fmt.Errorf("failed to open camera device %d: %w", p.device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return fmt.Errorf("camera device %d is not available", p.device)
	}

	p.cancel = make(chan struct{})
	p.done = make(chan struct{})
	p.running = true

	p.log.Info("Scanner", "camera capture started", map[string]interface{}{"device": p.device})
	go p.loop(capture, p.cancel, p.done)
	return nil
}

// Stop ends the capture loop and releases the camera. It blocks until
// the loop goroutine has exited.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	cancel, done := p.cancel, p.done
	p.running = false
	p.mu.Unlock()

	close(cancel)
	<-done
	p.log.Info("Scanner", "camera capture stopped", nil)
}

// Running reports whether the capture loop is active.
func (p *Pipeline) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Pipeline) loop(capture *gocv.VideoCapture, cancel <-chan struct{}, done chan<- struct{}) {
	frame := gocv.NewMat()
	detector := gocv.NewQRCodeDetector()
	corners := gocv.NewMat()
	straight := gocv.NewMat()

	defer func() {
		straight.Close()
		corners.Close()
		detector.Close()
		frame.Close()
		capture.Close()
		close(done)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
		}

		if ok := capture.Read(&frame); !ok || frame.Empty() {
			p.log.Warning("Scanner", "failed to read frame from camera", nil)
			continue
		}

		if payload := detector.DetectAndDecode(frame, &corners, &straight); payload != "" {
			p.dispatchDecode(payload)
		}

		img, err := frame.ToImage()
		if err != nil {
			p.log.Error("Scanner", err, map[string]interface{}{"stage": "frame_convert"})
			continue
		}
		p.dispatchFrame(img)
	}
}

func (p *Pipeline) dispatchFrame(img image.Image) {
	p.mu.Lock()
	callback := p.frameCallback
	p.mu.Unlock()
	if callback != nil {
		fyne.Do(func() {
			callback(img)
		})
	}
}

func (p *Pipeline) dispatchDecode(payload string) {
	p.mu.Lock()
	callback := p.decodeCallback
	p.mu.Unlock()
	if callback != nil {
		fyne.Do(func() {
			callback(payload)
		})
	}
}
