package renderable

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TransformUniformsSize is the std140 size of TransformUniforms.
const TransformUniformsSize = 5*64 + 3*16

// TransformUniforms is what a renderer uploads per draw.
//
//	struct TransformData {
//	  model: mat4x4<f32>;          -- 0
//	  inv_model: mat4x4<f32>;      -- 64
//	  model_view: mat4x4<f32>;     -- 128
//	  inv_model_view: mat4x4<f32>; -- 192
//	  mvp: mat4x4<f32>;            -- 256
//	  normal: mat3x3<f32>;         -- 320 (3 x vec4 columns)
//	} -> 368 bytes
type TransformUniforms struct {
	Model        mgl32.Mat4
	InvModel     mgl32.Mat4
	ModelView    mgl32.Mat4
	InvModelView mgl32.Mat4
	MVP          mgl32.Mat4
	Normal       mgl32.Mat3
	Program      ProgramHandle
}

// CollectUniforms reads t's current matrices. It refuses stale or absent ones
// rather than upload something out of date.
func CollectUniforms(t Transformable) (TransformUniforms, error) {
	switch {
	case t.ModelStale():
		return TransformUniforms{}, fmt.Errorf("model: %w", ErrStaleMatrix)
	case t.ModelViewStale():
		return TransformUniforms{}, fmt.Errorf("model-view: %w", ErrStaleMatrix)
	case t.MVPStale():
		return TransformUniforms{}, fmt.Errorf("mvp: %w", ErrStaleMatrix)
	}

	mv, ok := t.ModelView().Get()
	if !ok {
		return TransformUniforms{}, fmt.Errorf("model-view: %w", ErrMatrixAbsent)
	}
	imv, ok := t.InvModelView().Get()
	if !ok {
		return TransformUniforms{}, fmt.Errorf("inverse model-view: %w", ErrMatrixAbsent)
	}
	mvp, ok := t.MVP().Get()
	if !ok {
		return TransformUniforms{}, fmt.Errorf("mvp: %w", ErrMatrixAbsent)
	}

	return TransformUniforms{
		Model:        t.Model(),
		InvModel:     t.InvModel(),
		ModelView:    mv,
		InvModelView: imv,
		MVP:          mvp,
		Normal:       normalMatrix(imv),
		Program:      t.Program(),
	}, nil
}

// Bytes packs the block column-major, little-endian.
func (u TransformUniforms) Bytes() []byte {
	buf := make([]byte, TransformUniformsSize)

	writeMat := func(offset int, mat mgl32.Mat4) {
		for i, v := range mat {
			binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
		}
	}

	writeMat(0, u.Model)
	writeMat(64, u.InvModel)
	writeMat(128, u.ModelView)
	writeMat(192, u.InvModelView)
	writeMat(256, u.MVP)

	// mat3 columns are padded to vec4.
	for col := 0; col < 3; col++ {
		for r := 0; r < 3; r++ {
			off := 320 + col*16 + r*4
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(u.Normal[col*3+r]))
		}
	}

	return buf
}
