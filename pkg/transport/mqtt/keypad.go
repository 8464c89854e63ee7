package mqtt

// Keypad is the remote side of a board Transport: it presses keys and
// receives the feedback messages.
type Keypad struct {
	Conn    *Conn
	BoardID string

	outSub *Subscription
}

// NewKeypad creates a Keypad for the board on a connected Conn.
// onFeedback is called with every feedback message from the board.
func NewKeypad(conn *Conn, boardID string, onFeedback func(string)) (*Keypad, error) {
	k := &Keypad{Conn: conn, BoardID: boardID}
	k.outSub = conn.Sub(BoardTopic(boardID, TopicOut), Handler(func(_ string, payload []byte) {
		if onFeedback != nil {
			onFeedback(string(payload))
		}
	}))
	k.outSub.Token.Wait()
	if err := k.outSub.Token.Error(); err != nil {
		return nil, err
	}
	return k, nil
}

// Press sends keystrokes to the board.
func (k *Keypad) Press(keys string) error {
	token := k.Conn.Pub(BoardTopic(k.BoardID, TopicKey), []byte(keys))
	token.Wait()
	return token.Error()
}

// Close implements io.Closer. The Conn stays open.
func (k *Keypad) Close() error {
	return k.outSub.Close()
}
