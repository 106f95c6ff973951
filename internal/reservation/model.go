package reservation

// User は予約を行った利用者。メールアドレスで一意に識別する。
// 最初の予約時に作成され、以後は更新されない。
type User struct {
	// Name は利用者名。
	Name string `json:"name" db:"name"`
	// Email はメールアドレス。
	Email string `json:"email" db:"email"`
}

// Reservation は会議室の予約。
type Reservation struct {
	// ID は予約の識別子。
	ID uint64 `json:"id" db:"id"`
	// Email は予約した利用者のメールアドレス。
	Email string `json:"email" db:"email"`
	// Room は予約した部屋。
	Room string `json:"room" db:"room"`
}

// CreateRequest は予約作成の入力。書式の検証は行わず、空文字もそのまま受け付ける。
type CreateRequest struct {
	// Name は利用者名。
	Name string `json:"name"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Room は予約する部屋。
	Room string `json:"room"`
}
