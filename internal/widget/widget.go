// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

// Package widget renders the embeddable chat snippet for a serving
// endpoint. Pure string templating, no state.
package widget

import (
	"strings"
	"text/template"

	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

// Params configures one rendered snippet.
type Params struct {
	// Endpoint is the base URL of a running serve endpoint, e.g.
	// "http://127.0.0.1:3117".
	Endpoint string
	// Namespace labels the widget header.
	Namespace string
	// Title overrides the header text; defaults to "Ask {{.Namespace}}".
	Title string
}

const snippet = `<!-- ragchat widget: paste before </body> -->
<div id="ragchat-widget"></div>
<script>
(function () {
  var endpoint = "{{.Endpoint | js}}";
  var root = document.getElementById("ragchat-widget");
  root.innerHTML =
    '<div style="position:fixed;bottom:16px;right:16px;width:320px;font-family:sans-serif;' +
    'border:1px solid #ccc;border-radius:8px;background:#fff;box-shadow:0 2px 8px rgba(0,0,0,.15)">' +
    '<div style="padding:8px 12px;font-weight:bold;border-bottom:1px solid #eee">{{.Title | js}}</div>' +
    '<div id="ragchat-log" style="height:240px;overflow-y:auto;padding:8px 12px;font-size:14px"></div>' +
    '<form id="ragchat-form" style="display:flex;border-top:1px solid #eee">' +
    '<input id="ragchat-input" style="flex:1;border:0;padding:8px 12px;outline:none" placeholder="Ask a question…">' +
    '<button style="border:0;background:none;padding:8px 12px;cursor:pointer">Send</button>' +
    '</form></div>';

  var log = document.getElementById("ragchat-log");
  var input = document.getElementById("ragchat-input");
  var history = [];

  function append(role, text) {
    var line = document.createElement("div");
    line.style.margin = "4px 0";
    line.textContent = (role === "user" ? "You: " : "Bot: ") + text;
    log.appendChild(line);
    log.scrollTop = log.scrollHeight;
  }

  document.getElementById("ragchat-form").addEventListener("submit", function (ev) {
    ev.preventDefault();
    var message = input.value;
    input.value = "";
    append("user", message);

    fetch(endpoint + "/chat", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ message: message, history: history })
    })
      .then(function (res) { return res.json(); })
      .then(function (data) {
        var reply = data.reply || data.error || "no reply";
        append("assistant", reply);
        history.push({ role: "user", text: message });
        history.push({ role: "assistant", text: reply });
        history = history.slice(-10);
      })
      .catch(function () { append("assistant", "request failed"); });
  });
})();
</script>
`

var snippetTmpl = template.Must(template.New("widget").Parse(snippet))

// Render produces the widget snippet for the given params.
func Render(p Params) (string, error) {
	if p.Endpoint == "" {
		return "", ragerr.New(ragerr.CodeCLIInputInvalid, "widget: endpoint must not be empty")
	}
	if p.Title == "" {
		if p.Namespace != "" {
			p.Title = "Ask " + p.Namespace
		} else {
			p.Title = "Ask me anything"
		}
	}

	var b strings.Builder
	if err := snippetTmpl.Execute(&b, p); err != nil {
		return "", ragerr.Wrap(err, ragerr.CodeWidgetRenderFailure, "rendering widget snippet")
	}
	return b.String(), nil
}
