package ctlplane

import "github.com/UoC-Radio/jmpxrds-go/internal/rds"

// Field byte offsets within the RDS encoder state region. Fixed-width byte
// arrays (PS/PTYN/RT/AFData) are copied verbatim; everything else is a
// single byte or a little-endian uint16.
const (
	rdsOffEnabled    = 0
	rdsOffPI         = 1 // uint16
	rdsOffECC        = 3
	rdsOffECCSet     = 4
	rdsOffLIC        = 5 // uint16
	rdsOffLICSet     = 7
	rdsOffPTY        = 8
	rdsOffTA         = 9
	rdsOffTP         = 10
	rdsOffMS         = 11
	rdsOffDI         = 12
	rdsOffPS         = 13 // [8]byte
	rdsOffPSSet      = 21
	rdsOffPTYN       = 22 // [8]byte
	rdsOffPTYNSet    = 30
	rdsOffPTYNFlush  = 31
	rdsOffRT         = 32 // [64]byte
	rdsOffRTSet      = 96
	rdsOffRTSegments = 97
	rdsOffRTFlush    = 98
	rdsOffAFData     = 99 // [2]byte
	rdsOffAFSet      = 101

	rdsEncSize = 102
)

// RDSEncData is the wire layout of the RDS encoder state region, mirroring
// struct rds_encoder_state (adapted to rds.State's actual field set rather
// than the original's bitfield packing, which Go structs don't have a
// direct equivalent for).
type RDSEncData struct {
	Enabled bool

	PI  uint16
	ECC uint8
	LIC uint16
	PTY uint8
	TA  bool
	TP  bool
	MS  uint8
	DI  uint8

	ECCSet bool
	LICSet bool

	PS    [rds.PSLength]byte
	PSSet bool

	PTYN      [rds.PTYNLength]byte
	PTYNSet   bool
	PTYNFlush bool

	RT         [rds.RTLength]byte
	RTSet      bool
	RTSegments uint8
	RTFlush    bool

	AFData [2]byte
	AFSet  bool
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// MarshalBinary encodes d into a fixed rdsEncSize-byte layout.
func (d RDSEncData) MarshalBinary() []byte {
	buf := make([]byte, rdsEncSize)
	buf[rdsOffEnabled] = boolByte(d.Enabled)
	putUint16(buf[rdsOffPI:], d.PI)
	buf[rdsOffECC] = d.ECC
	buf[rdsOffECCSet] = boolByte(d.ECCSet)
	putUint16(buf[rdsOffLIC:], d.LIC)
	buf[rdsOffLICSet] = boolByte(d.LICSet)
	buf[rdsOffPTY] = d.PTY
	buf[rdsOffTA] = boolByte(d.TA)
	buf[rdsOffTP] = boolByte(d.TP)
	buf[rdsOffMS] = d.MS
	buf[rdsOffDI] = d.DI
	copy(buf[rdsOffPS:], d.PS[:])
	buf[rdsOffPSSet] = boolByte(d.PSSet)
	copy(buf[rdsOffPTYN:], d.PTYN[:])
	buf[rdsOffPTYNSet] = boolByte(d.PTYNSet)
	buf[rdsOffPTYNFlush] = boolByte(d.PTYNFlush)
	copy(buf[rdsOffRT:], d.RT[:])
	buf[rdsOffRTSet] = boolByte(d.RTSet)
	buf[rdsOffRTSegments] = d.RTSegments
	buf[rdsOffRTFlush] = boolByte(d.RTFlush)
	copy(buf[rdsOffAFData:], d.AFData[:])
	buf[rdsOffAFSet] = boolByte(d.AFSet)
	return buf
}

// UnmarshalRDSEncData decodes a fixed rdsEncSize-byte layout produced by
// MarshalBinary. buf must be at least rdsEncSize bytes.
func UnmarshalRDSEncData(buf []byte) RDSEncData {
	var d RDSEncData
	d.Enabled = buf[rdsOffEnabled] != 0
	d.PI = getUint16(buf[rdsOffPI:])
	d.ECC = buf[rdsOffECC]
	d.ECCSet = buf[rdsOffECCSet] != 0
	d.LIC = getUint16(buf[rdsOffLIC:])
	d.LICSet = buf[rdsOffLICSet] != 0
	d.PTY = buf[rdsOffPTY]
	d.TA = buf[rdsOffTA] != 0
	d.TP = buf[rdsOffTP] != 0
	d.MS = buf[rdsOffMS]
	d.DI = buf[rdsOffDI]
	copy(d.PS[:], buf[rdsOffPS:rdsOffPS+rds.PSLength])
	d.PSSet = buf[rdsOffPSSet] != 0
	copy(d.PTYN[:], buf[rdsOffPTYN:rdsOffPTYN+rds.PTYNLength])
	d.PTYNSet = buf[rdsOffPTYNSet] != 0
	d.PTYNFlush = buf[rdsOffPTYNFlush] != 0
	copy(d.RT[:], buf[rdsOffRT:rdsOffRT+rds.RTLength])
	d.RTSet = buf[rdsOffRTSet] != 0
	d.RTSegments = buf[rdsOffRTSegments]
	d.RTFlush = buf[rdsOffRTFlush] != 0
	copy(d.AFData[:], buf[rdsOffAFData:rdsOffAFData+2])
	d.AFSet = buf[rdsOffAFSet] != 0
	return d
}

// FromState captures an rds.State into the wire struct.
func FromState(st *rds.State) RDSEncData {
	return RDSEncData{
		Enabled:    st.Enabled,
		PI:         st.PI,
		ECC:        st.ECC,
		ECCSet:     st.ECCSet,
		LIC:        st.LIC,
		LICSet:     st.LICSet,
		PTY:        st.PTY,
		TA:         st.TA,
		TP:         st.TP,
		MS:         st.MS,
		DI:         st.DI,
		PS:         st.PS,
		PSSet:      st.PSSet,
		PTYN:       st.PTYN,
		PTYNSet:    st.PTYNSet,
		PTYNFlush:  st.PTYNFlush,
		RT:         st.RT,
		RTSet:      st.RTSet,
		RTSegments: uint8(st.RTSegments),
		RTFlush:    st.RTFlush,
		AFData:     st.AFData,
		AFSet:      st.AFSet,
	}
}

// ToState reconstructs an rds.State from captured wire data, so a control
// tool can apply the package's own setters (validation included) before
// writing the result back with FromState.
func ToState(d RDSEncData) *rds.State {
	return &rds.State{
		Enabled:    d.Enabled,
		PI:         d.PI,
		ECC:        d.ECC,
		LIC:        d.LIC,
		PTY:        d.PTY,
		TA:         d.TA,
		TP:         d.TP,
		MS:         d.MS,
		DI:         d.DI,
		ECCSet:     d.ECCSet,
		LICSet:     d.LICSet,
		AFSet:      d.AFSet,
		PSSet:      d.PSSet,
		PTYNSet:    d.PTYNSet,
		RTSet:      d.RTSet,
		PS:         d.PS,
		PTYN:       d.PTYN,
		PTYNFlush:  d.PTYNFlush,
		RT:         d.RT,
		RTSegments: int(d.RTSegments),
		RTFlush:    d.RTFlush,
		AFData:     d.AFData,
	}
}

// RDSEncHandle is a mapped RDS encoder state region.
type RDSEncHandle struct{ r *region }

// CreateRDSEnc creates the RDS encoder state region; called once by the
// running encoder's owner.
func CreateRDSEnc() (*RDSEncHandle, error) {
	r, err := create(RDSEncSHMName, rdsEncSize)
	if err != nil {
		return nil, err
	}
	return &RDSEncHandle{r: r}, nil
}

// AttachRDSEnc attaches to an already-running encoder's state region; used
// by tools.
func AttachRDSEnc() (*RDSEncHandle, error) {
	r, err := attach(RDSEncSHMName, rdsEncSize)
	if err != nil {
		return nil, err
	}
	return &RDSEncHandle{r: r}, nil
}

// Read decodes the region's current contents.
func (h *RDSEncHandle) Read() RDSEncData { return UnmarshalRDSEncData(h.r.mem) }

// Write encodes d into the region.
func (h *RDSEncHandle) Write(d RDSEncData) { copy(h.r.mem, d.MarshalBinary()) }

// Detach unmaps without removing the region.
func (h *RDSEncHandle) Detach() error { return h.r.detach() }

// Destroy unmaps and removes the region; only the owning service should
// call this.
func (h *RDSEncHandle) Destroy() error { return h.r.destroy() }
