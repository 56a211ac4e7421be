// Package predictor scores positions with a policy/value network run through
// ONNX Runtime.
package predictor

import (
	"errors"
	"fmt"
	"sync"

	"polyfish/game"
	"polyfish/meta"
	"polyfish/searcher"
	"polyfish/utils"

	"github.com/rs/zerolog/log"
	ort "github.com/yalue/onnxruntime_go"
)

const (
	inputName  = "state"
	policyName = "policy"
	valueName  = "value"
)

// ONNX runs a model with one input of shape [1, planes, height, width] and
// outputs policy [1, MoveKinds*tiles] and value [1, 1]. The session binds
// fixed tensors, so calls are serialized.
type ONNX struct {
	mu      sync.Mutex
	width   int
	height  int
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	policy  *ort.Tensor[float32]
	value   *ort.Tensor[float32]
}

var _ searcher.Predictor = (*ONNX)(nil)

var envOnce sync.Once
var envErr error

func initEnvironment(sharedLibrary string) error {
	envOnce.Do(func() {
		if sharedLibrary != "" {
			ort.SetSharedLibraryPath(sharedLibrary)
		}
		envErr = ort.InitializeEnvironment()
	})
	return envErr
}

// NewONNX loads the model for maps of width x height tiles.
func NewONNX(cfg meta.PredictorConfig, width, height int) (*ONNX, error) {
	if cfg.Model == "" {
		return nil, errors.New("no model configured")
	}
	if err := initEnvironment(cfg.SharedLibrary); err != nil {
		return nil, fmt.Errorf("failed to initialize onnxruntime: %w", err)
	}

	tiles := width * height
	p := &ONNX{width: width, height: height}
	var err error
	p.input, err = ort.NewTensor(ort.NewShape(1, planeCount, int64(height), int64(width)), make([]float32, planeCount*tiles))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	p.policy, err = ort.NewEmptyTensor[float32](ort.NewShape(1, int64(game.MoveKinds*tiles)))
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to create policy tensor: %w", err)
	}
	p.value, err = ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to create value tensor: %w", err)
	}
	p.session, err = ort.NewAdvancedSession(cfg.Model,
		[]string{inputName},
		[]string{policyName, valueName},
		[]ort.Value{p.input},
		[]ort.Value{p.policy, p.value},
		nil,
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to load model %s: %w", cfg.Model, err)
	}
	log.Info().Str("model", cfg.Model).Int("width", width).Int("height", height).Msg("predictor loaded")
	return p, nil
}

func (p *ONNX) Predict(s *game.WorldState, moves []game.Move) (searcher.Prediction, error) {
	if s.Width != p.width || s.Height != p.height {
		return searcher.Prediction{}, fmt.Errorf("model expects %dx%d, got %dx%d", p.width, p.height, s.Width, s.Height)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	Encode(s, p.input.GetData())
	if err := p.session.Run(); err != nil {
		return searcher.Prediction{}, fmt.Errorf("inference failed: %w", err)
	}
	return searcher.Prediction{
		Priors: gather(p.policy.GetData(), moves, len(s.Tiles)),
		Value:  utils.Clamp(float64(p.value.GetData()[0]), -1, 1),
	}, nil
}

// Close releases the session and tensors. The runtime environment stays up
// for other predictors.
func (p *ONNX) Close() {
	if p.session != nil {
		p.session.Destroy()
		p.session = nil
	}
	for _, t := range []*ort.Tensor[float32]{p.input, p.policy, p.value} {
		if t != nil {
			t.Destroy()
		}
	}
	p.input, p.policy, p.value = nil, nil, nil
}
