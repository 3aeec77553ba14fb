package domain

// Thread is a conversation summary from chat/threads.
type Thread struct {
	ThreadID   int64  `json:"threadId"`
	Subject    string `json:"subject"`
	MsgPreview string `json:"msgPreview"`
	SenderFio  string `json:"senderFio"`
	SendDate   Millis `json:"sendDate"`
	DlgType    int    `json:"dlgType"`
}

// Title returns the subject, falling back to the sender.
func (t Thread) Title() string {
	return CoalesceStr(t.Subject, t.SenderFio, "No subject")
}

// Message is a single chat message.
type Message struct {
	MsgID      int64  `json:"msgId"`
	Text       string `json:"msg"`
	SenderFio  string `json:"senderFio"`
	SenderID   int64  `json:"senderId"`
	CreateDate Millis `json:"createDate"`
	IsOwner    bool   `json:"isOwner"`
}
