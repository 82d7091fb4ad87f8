// Package packid packs a shader id, a stage code and a variant mask into the
// 64-bit identifier that names every compiled artifact.
//
// Layout, most significant bit first:
//
//	63            32 31      24 23               0
//	+---------------+----------+------------------+
//	|   shader id   |  stage   |   variant mask   |
//	+---------------+----------+------------------+
//
// The variant field is 24 bits wide, so at most 24 variants can be told apart
// within one shader.
package packid

import (
	"fmt"

	"github.com/vk/shadergen/internal/builderr"
	"github.com/vk/shadergen/internal/model"
)

const (
	// VariantBits is the width of the variant mask field.
	VariantBits = 24
	// MaxVariantMask is the largest mask that fits the variant field.
	MaxVariantMask = 1<<VariantBits - 1

	stageShift  = 24
	shaderShift = 32

	// OutputExt is appended to the hex identifier to form an output name.
	OutputExt = ".spv"
)

// ID is a packed shader identifier.
type ID uint64

// Pack combines the three fields into one identifier. A mask that spills out
// of the variant field would alias another stage's identifiers and is
// rejected.
func Pack(shaderID uint32, stage model.StageKind, mask uint64) (ID, error) {
	if !stage.Valid() {
		return 0, fmt.Errorf("invalid stage code %d", stage.Code())
	}
	if mask > MaxVariantMask {
		return 0, builderr.Configf("variant mask 0x%X does not fit the %d-bit variant field", mask, VariantBits)
	}
	return ID(uint64(shaderID)<<shaderShift | uint64(stage.Code())<<stageShift | mask), nil
}

// Unpack splits the identifier back into its fields.
func (id ID) Unpack() (shaderID uint32, stage model.StageKind, mask uint64) {
	shaderID = uint32(id >> shaderShift)
	stage = model.StageKind(uint8(id >> stageShift))
	mask = uint64(id) & MaxVariantMask
	return shaderID, stage, mask
}

// String formats the identifier as 16 uppercase hex digits.
func (id ID) String() string {
	return fmt.Sprintf("%016X", uint64(id))
}

// OutputName returns the artifact file name, e.g. "0000000102000000.spv".
func (id ID) OutputName() string {
	return id.String() + OutputExt
}

// OutputName packs the fields and returns the artifact file name.
func OutputName(shaderID uint32, stage model.StageKind, mask uint64) (string, error) {
	id, err := Pack(shaderID, stage, mask)
	if err != nil {
		return "", err
	}
	return id.OutputName(), nil
}
