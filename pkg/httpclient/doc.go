// Package httpclient は外部エンドポイントへJSONを送受信するHTTPクライアントを提供する。
//
// 通知のWebhook転送で使用する。リクエストIDをコンテキストから
// X-Request-IDヘッダーへ伝播し、2xx以外のレスポンスはStatusErrorとして返す。
package httpclient
