package metrics

import (
	"net/http"
	"time"

	"github.com/arl/statsviz"
)

// Serve 在 addr 上暴露运行时监控页面 /debug/statsviz/，阻塞直到服务退出
func Serve(addr string) error {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}
