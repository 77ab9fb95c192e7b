package bpl

// BlockID identifies a block within one implementation.
type BlockID int

// Block is a labeled straight-line command sequence with one transfer.
type Block struct {
	ID       BlockID
	Label    string
	Cmds     []Cmd
	Transfer Transfer
}

// Add appends commands to the block.
func (b *Block) Add(cmds ...Cmd) {
	b.Cmds = append(b.Cmds, cmds...)
}

// Prepend inserts commands before the block's existing commands.
func (b *Block) Prepend(cmds ...Cmd) {
	b.Cmds = append(append(make([]Cmd, 0, len(cmds)+len(b.Cmds)), cmds...), b.Cmds...)
}

// Transfer ends a block.
type Transfer interface {
	Successors() []BlockID
	transfer()
}

// Return leaves the procedure.
type Return struct{}

func (*Return) transfer() {}

// Successors implements Transfer; a return has none.
func (*Return) Successors() []BlockID { return nil }

// Goto is a multi-way branch: control continues nondeterministically at any
// one of Targets.
type Goto struct {
	Targets []BlockID
}

func (*Goto) transfer() {}

// Successors implements Transfer.
func (g *Goto) Successors() []BlockID { return g.Targets }

// GotoBlocks builds a Goto to the given blocks, in order.
func GotoBlocks(blocks ...*Block) *Goto {
	targets := make([]BlockID, len(blocks))
	for i, b := range blocks {
		targets[i] = b.ID
	}
	return &Goto{Targets: targets}
}

// BodyBuilder allocates blocks with fresh IDs for one implementation.
type BodyBuilder struct {
	blocks []*Block
	next   BlockID
}

// NewBodyBuilder returns an empty builder.
func NewBodyBuilder() *BodyBuilder {
	return &BodyBuilder{}
}

// NewBlock appends a block with the next free ID.
func (b *BodyBuilder) NewBlock(label string) *Block {
	blk := &Block{ID: b.next, Label: label}
	b.next++
	b.blocks = append(b.blocks, blk)
	return blk
}

// Blocks returns the blocks in creation order.
func (b *BodyBuilder) Blocks() []*Block {
	return b.blocks
}
