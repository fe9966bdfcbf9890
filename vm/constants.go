package vm

// Memory segment layout. These are fixed by the architecture this
// simulator targets, not user-configurable.
const (
	InstructionStart = 0x10000000
	InstructionSize  = 0x01000000 // 16 MiB

	DataStart = 0x20000000
	DataSize  = 0x04000000 // 64 MiB

	GetcAddr = 0x30000000
	PutcAddr = 0x30000004
)

// Register numbers with architectural meaning.
const (
	RZero = 0  // always reads as zero
	RA1   = 4  // conventional first argument register ($a0)
	RV0   = 2  // conventional return-value register ($v0)
	RRA   = 31 // link register
)

// NumRegisters is the number of general-purpose registers (R1..R31);
// register 0 is handled specially and is not stored.
const NumRegisters = 31

// Initial architectural state.
const (
	InitialPC = InstructionStart
)

// DefaultMaxCycles bounds a run that never reaches PC==0, so a
// malformed image cannot hang the host. 0 disables the cap.
const DefaultMaxCycles = 50_000_000
