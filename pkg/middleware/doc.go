// Package middleware は予約サービスのGinエンジンで使用する共通ミドルウェアを提供する。
//
// パニックリカバリ、リクエストID、アクセスログは常に適用する。
// CORSとJWT認証は設定で有効化した場合のみ適用する。
package middleware
