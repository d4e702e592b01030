package orchestrator

import (
	"fmt"

	sdktypes "github.com/blocto/solana-go-sdk/types"

	"frantik-client-sol/internal/types"
)

// Batch 一笔账本交易内共同执行的有序指令集及其签名者
type Batch struct {
	Instructions []sdktypes.Instruction
	Signers      []types.Signer
}

func (b Batch) Empty() bool {
	return len(b.Instructions) == 0
}

// Filter 将平行的指令组/签名者组配对并剔除空批次。
// 两个数组按下标对应，剔除时同步进行，保证签名者不会错位。
func Filter(instructionSets [][]sdktypes.Instruction, signerSets [][]types.Signer) ([]Batch, error) {
	if len(instructionSets) != len(signerSets) {
		return nil, fmt.Errorf("instruction sets and signer sets misaligned: %d vs %d", len(instructionSets), len(signerSets))
	}
	batches := make([]Batch, 0, len(instructionSets))
	for i, instrs := range instructionSets {
		if len(instrs) == 0 {
			continue
		}
		batches = append(batches, Batch{
			Instructions: instrs,
			Signers:      signerSets[i],
		})
	}
	return batches, nil
}
