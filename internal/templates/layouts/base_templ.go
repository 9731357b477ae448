// Code generated by templ - DO NOT EDIT.

// templ: version: v0.2.793
package layouts

//lint:file-ignore SA4006 This context is only used if a nested component is present.

import "github.com/a-h/templ"
import templruntime "github.com/a-h/templ/runtime"

// Base wraps body in the HTML page shell.
func Base(title string, theme *Theme, body templ.Component) templ.Component {
	return templruntime.GeneratedTemplate(func(templ_7745c5c3_Input templruntime.GeneratedComponentInput) (templ_7745c5c3_Err error) {
		templ_7745c5c3_W, ctx := templ_7745c5c3_Input.Writer, templ_7745c5c3_Input.Context
		if templ_7745c5c3_CtxErr := ctx.Err(); templ_7745c5c3_CtxErr != nil {
			return templ_7745c5c3_CtxErr
		}
		templ_7745c5c3_Buffer, templ_7745c5c3_IsBuffer := templruntime.GetBuffer(templ_7745c5c3_W)
		if !templ_7745c5c3_IsBuffer {
			defer func() {
				templ_7745c5c3_BufErr := templruntime.ReleaseBuffer(templ_7745c5c3_Buffer)
				if templ_7745c5c3_Err == nil {
					templ_7745c5c3_Err = templ_7745c5c3_BufErr
				}
			}()
		}
		ctx = templ.InitializeContext(ctx)
		templ_7745c5c3_Var1 := templ.GetChildren(ctx)
		if templ_7745c5c3_Var1 == nil {
			templ_7745c5c3_Var1 = templ.NopComponent
		}
		ctx = templ.ClearChildren(ctx)
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString("<!doctype html><html lang=\"es\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		var templ_7745c5c3_Var2 string
		templ_7745c5c3_Var2, templ_7745c5c3_Err = templ.JoinStringErrs(title)
		if templ_7745c5c3_Err != nil {
			return templ.Error{Err: templ_7745c5c3_Err, FileName: `layouts/base.templ`, Line: 10, Col: 17}
		}
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString(templ.EscapeString(templ_7745c5c3_Var2))
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString("</title><script src=\"/static/js/htmx.min.js\" defer></script>")
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		templ_7745c5c3_Err = templ.Raw("<style>"+getThemeCssVars(theme)+"</style>").Render(ctx, templ_7745c5c3_Buffer)
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString("<style>\n\t\t\t\tbody{font-family:system-ui,sans-serif;background:var(--theme-secondary);color:var(--theme-primary);margin:0;padding:1rem;}\n\t\t\t\t.booking-card{max-width:32rem;margin:0 auto;background:#fff;border-radius:8px;padding:1.5rem;box-shadow:0 4px 10px rgba(0,0,0,.1);}\n\t\t\t\t.booking-card label{display:block;margin-top:.75rem;font-weight:600;}\n\t\t\t\t.booking-card input,.booking-card textarea{width:100%;box-sizing:border-box;padding:.4rem;}\n\t\t\t\t.booking-card button{margin-top:1rem;margin-right:.5rem;padding:.5rem 1rem;background:var(--theme-accent);color:#fff;border:0;border-radius:4px;cursor:pointer;}\n\t\t\t\t.field-error{background-color:#ffffe6;color:var(--theme-error);padding:6px 8px;margin-top:4px;font-size:12px;border-radius:4px;font-weight:bold;display:block;}\n\t\t\t\t.notice-overlay{position:fixed;inset:0;background:rgba(0,0,0,.4);display:flex;justify-content:center;align-items:center;z-index:1000;}\n\t\t\t\t.notice{min-width:130px;min-height:100px;background:#fff;display:flex;justify-content:center;align-items:center;font-size:14px;border-radius:6px;box-shadow:0 4px 10px rgba(0,0,0,.3);padding:0 1rem;}\n\t\t\t</style></head><body>")
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		if body != nil {
			templ_7745c5c3_Err = body.Render(ctx, templ_7745c5c3_Buffer)
			if templ_7745c5c3_Err != nil {
				return templ_7745c5c3_Err
			}
		}
		_, templ_7745c5c3_Err = templ_7745c5c3_Buffer.WriteString("<script>\n\t\t\t\tdocument.addEventListener(\"focusin\",function(e){var n=e.target.nextElementSibling;if(n&&n.classList.contains(\"field-error\")){n.remove();}});\n\t\t\t\tfunction armNotices(root){root.querySelectorAll(\"[data-timeout-ms]\").forEach(function(el){setTimeout(function(){el.remove();},parseInt(el.dataset.timeoutMs,10)||3000);});}\n\t\t\t\tdocument.addEventListener(\"DOMContentLoaded\",function(){armNotices(document);});\n\t\t\t\tdocument.addEventListener(\"htmx:afterSwap\",function(e){armNotices(e.target);});\n\t\t\t\tdocument.addEventListener(\"booking:open\",function(e){var u=e.detail&&e.detail.url;if(u){window.open(u,\"_blank\",\"noopener,noreferrer\");}});\n\t\t\t</script></body></html>")
		if templ_7745c5c3_Err != nil {
			return templ_7745c5c3_Err
		}
		return templ_7745c5c3_Err
	})
}

var _ = templruntime.GeneratedTemplate
