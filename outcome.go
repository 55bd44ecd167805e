package fifotoken

// Outcome describes how an acquisition attempt finished.
type Outcome int

const (
	// GrantedImmediately means the caller got the Token without blocking:
	// either it was free or the caller already held it.
	GrantedImmediately Outcome = iota
	// GrantedAfterWait means the caller blocked behind other holders before
	// being granted the Token.
	GrantedAfterWait
	// WouldBlock means TryAcquire found the Token held by someone else. The
	// caller does not hold the Token.
	WouldBlock
)

// Granted reports if the outcome leaves the caller holding the Token.
func (o Outcome) Granted() bool { return o == GrantedImmediately || o == GrantedAfterWait }

func (o Outcome) String() string {
	switch o {
	case GrantedImmediately:
		return "GrantedImmediately"
	case GrantedAfterWait:
		return "GrantedAfterWait"
	case WouldBlock:
		return "WouldBlock"
	default:
		return "Outcome(?)"
	}
}
