package server

// thinClientJS is the embedded browser runtime: it opens the session
// socket, forwards DOM events on nodes carrying a data-veld ID, and
// applies incoming patches.
const thinClientJS = `(function () {
  "use strict";
  var cfg = window.__veld || {};
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + cfg.ws + "?sid=" + cfg.sid);

  function nodeOf(id) {
    return document.querySelector('[data-veld="' + id + '"]');
  }

  function send(node, name, value) {
    var id = node.getAttribute("data-veld");
    if (!id || ws.readyState !== WebSocket.OPEN) return;
    ws.send(JSON.stringify({ type: "event", node: +id, name: name, value: value || "" }));
  }

  ["click", "input", "submit", "change"].forEach(function (name) {
    document.addEventListener(name, function (ev) {
      var el = ev.target.closest("[data-veld]");
      if (!el) return;
      if (name === "submit") ev.preventDefault();
      send(el, name, ev.target.value);
    }, true);
  });

  function apply(p) {
    var el = nodeOf(p.node);
    switch (p.op) {
      case 1: if (el) el.textContent = p.value; break;
      case 2: if (el) el.setAttribute(p.key, p.value); break;
      case 3: if (el) el.removeAttribute(p.key); break;
      case 4: {
        var parent = nodeOf(p.parent);
        if (!parent) return;
        var tpl = document.createElement("template");
        tpl.innerHTML = p.markup;
        var ref = p.ref ? nodeOf(p.ref) : null;
        parent.insertBefore(tpl.content, ref ? ref.nextSibling : parent.firstChild);
        break;
      }
      case 5: if (el && el.parentNode) el.parentNode.removeChild(el); break;
      case 6: {
        var parent = nodeOf(p.parent);
        if (!parent || !el) return;
        var ref = p.ref ? nodeOf(p.ref) : null;
        parent.insertBefore(el, ref ? ref.nextSibling : parent.firstChild);
        break;
      }
    }
  }

  ws.onmessage = function (msg) {
    var frame = JSON.parse(msg.data);
    if (frame.type === "patches") frame.patches.forEach(apply);
  };
})();
`
